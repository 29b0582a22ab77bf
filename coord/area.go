package coord

import (
	"errors"
	"math"
)

// ErrInvalidGeometry is returned when a work area's margin leaves no
// usable interior.
var ErrInvalidGeometry = errors.New("coord: margin leaves no space for movement in the work area")

// Area is a rectangular work envelope with a keep-out margin on all sides.
//
// It is a value type; construct with NewArea and share freely.
type Area struct {
	Width, Height float64
	Margin        float64
}

// NewArea validates and returns a work area.
func NewArea(width, height, margin float64) (Area, error) {
	a := Area{Width: width, Height: height, Margin: margin}
	if margin*2 >= width || margin*2 >= height {
		return Area{}, ErrInvalidGeometry
	}
	return a, nil
}

func (a Area) XMin() float64 { return a.Margin }
func (a Area) XMax() float64 { return a.Width - a.Margin }
func (a Area) YMin() float64 { return a.Margin }
func (a Area) YMax() float64 { return a.Height - a.Margin }

// Center returns the midpoint of the usable interior.
func (a Area) Center() Point {
	return Point{
		X: (a.XMin() + a.XMax()) / 2,
		Y: (a.YMin() + a.YMax()) / 2,
	}
}

// Clamp saturates a point component-wise into the usable interior.
func (a Area) Clamp(x, y float64) Point {
	return Point{
		X: math.Min(math.Max(x, a.XMin()), a.XMax()),
		Y: math.Min(math.Max(y, a.YMin()), a.YMax()),
	}
}

// MaxOffset returns the largest distance from the center to any bound.
func (a Area) MaxOffset() float64 {
	c := a.Center()
	return math.Max(
		math.Max(c.X-a.XMin(), a.XMax()-c.X),
		math.Max(c.Y-a.YMin(), a.YMax()-c.Y),
	)
}

// InscribedRadius returns the radius of the largest circle around the
// center that stays fully inside the usable interior.
func (a Area) InscribedRadius() float64 {
	c := a.Center()
	return math.Min(
		math.Min(c.X-a.XMin(), a.XMax()-c.X),
		math.Min(c.Y-a.YMin(), a.YMax()-c.Y),
	)
}

// InscribedSquare returns the origin (lower-left corner) and side length
// of the largest centered square inside the usable interior.
func (a Area) InscribedSquare() (origin Point, size float64) {
	size = math.Min(a.XMax()-a.XMin(), a.YMax()-a.YMin())
	origin = Point{
		X: (a.XMin() + a.XMax() - size) / 2,
		Y: (a.YMin() + a.YMax() - size) / 2,
	}
	return origin, size
}
