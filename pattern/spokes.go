package pattern

import (
	"fmt"
	"io"
	"math"

	"github.com/mastercactapus/xyplot/coord"
)

// SpokesParams configure radial spoke laps.
type SpokesParams struct {
	// Rays is the number of evenly spaced directions per lap.
	Rays int

	// RadialStep is the radius increase between laps.
	RadialStep float64

	// Alternate reverses ray order every other lap to cut down angular
	// backtracking between laps.
	Alternate bool
}

// DefaultSpokes are the stock radial spoke parameters.
var DefaultSpokes = SpokesParams{Rays: 24, RadialStep: 60, Alternate: true}

// RadialSpokes emits the center first, then one point per ray at each
// successive radius until the work area bound is passed.
type RadialSpokes struct {
	area   coord.Area
	center coord.Point

	rays      int
	step      float64
	alternate bool
	maxRadius float64

	radius  float64
	idx     int
	reverse bool
	started bool
}

// NewRadialSpokes validates params and returns a fresh sequence.
func NewRadialSpokes(area coord.Area, p SpokesParams) (*RadialSpokes, error) {
	if p.Rays < 1 {
		return nil, fmt.Errorf("%w: number of rays must be positive", ErrInvalidParameter)
	}
	if p.RadialStep <= 0 {
		return nil, fmt.Errorf("%w: radial step must be positive", ErrInvalidParameter)
	}
	return &RadialSpokes{
		area:      area,
		center:    area.Center(),
		rays:      p.Rays,
		step:      p.RadialStep,
		alternate: p.Alternate,
		maxRadius: area.MaxOffset(),
		radius:    p.RadialStep,
	}, nil
}

func (s *RadialSpokes) Read() (coord.Point, error) {
	if !s.started {
		s.started = true
		return s.center, nil
	}
	if s.radius > s.maxRadius+s.step {
		return coord.Point{}, io.EOF
	}

	idx := s.idx
	if s.alternate && s.reverse {
		idx = s.rays - 1 - idx
	}
	angle := 2 * math.Pi * float64(idx) / float64(s.rays)
	p := s.area.Clamp(
		s.center.X+s.radius*math.Cos(angle),
		s.center.Y+s.radius*math.Sin(angle),
	)

	s.idx++
	if s.idx >= s.rays {
		s.idx = 0
		s.reverse = !s.reverse
		s.radius += s.step
	}
	return p, nil
}
