package pattern

import (
	"fmt"
	"io"
	"math"

	"github.com/mastercactapus/xyplot/coord"
)

// PhyllotaxisParams configure a golden-angle spiral fill.
type PhyllotaxisParams struct {
	// Points caps the number of emitted points. Zero yields an empty
	// sequence.
	Points int

	// Step scales the radius: point n sits at Step * sqrt(n).
	Step float64

	// AngleDeg is the rotation per point; 137.5 is the golden angle.
	AngleDeg float64
}

// DefaultPhyllotaxis are the stock golden-angle parameters.
var DefaultPhyllotaxis = PhyllotaxisParams{Points: 500, Step: 22, AngleDeg: 137.5}

// Phyllotaxis places points sunflower-style for near-uniform areal
// density. It terminates as soon as a point would leave the circle
// inscribed in the work area rather than clamping it to the rim.
type Phyllotaxis struct {
	area   coord.Area
	center coord.Point

	points    int
	step      float64
	angle     float64
	maxRadius float64

	n int
}

// NewPhyllotaxis validates params and returns a fresh sequence.
func NewPhyllotaxis(area coord.Area, p PhyllotaxisParams) (*Phyllotaxis, error) {
	if p.Step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive", ErrInvalidParameter)
	}
	if p.AngleDeg <= 0 {
		return nil, fmt.Errorf("%w: angle must be positive", ErrInvalidParameter)
	}
	return &Phyllotaxis{
		area:      area,
		center:    area.Center(),
		points:    p.Points,
		step:      p.Step,
		angle:     p.AngleDeg * math.Pi / 180,
		maxRadius: area.InscribedRadius(),
	}, nil
}

func (s *Phyllotaxis) Read() (coord.Point, error) {
	if s.n >= s.points {
		return coord.Point{}, io.EOF
	}
	radius := s.step * math.Sqrt(float64(s.n))
	if radius > s.maxRadius {
		return coord.Point{}, io.EOF
	}
	theta := float64(s.n) * s.angle
	s.n++
	return s.area.Clamp(
		s.center.X+radius*math.Cos(theta),
		s.center.Y+radius*math.Sin(theta),
	), nil
}
