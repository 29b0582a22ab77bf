package pattern

import (
	"fmt"
	"io"
	"math"

	"github.com/mastercactapus/xyplot/coord"
)

// SpiralParams configure the center-out refined spiral.
type SpiralParams struct {
	InitialSpacing float64

	// Decay multiplies the ring spacing after each full revolution.
	Decay float64

	// MinSpacing is the floor the decay never shrinks below.
	MinSpacing float64

	// AngleStepDeg is the angular resolution of each revolution.
	AngleStepDeg float64
}

// DefaultSpiral are the stock refined-spiral parameters.
var DefaultSpiral = SpiralParams{
	InitialSpacing: 250,
	Decay:          0.65,
	MinSpacing:     35,
	AngleStepDeg:   6,
}

// RefinedSpiral spirals out from the center, tightening the gap between
// revolutions geometrically so coverage gets denser toward the rim.
// Consecutive duplicate points (after clamping) are suppressed.
type RefinedSpiral struct {
	area   coord.Area
	center coord.Point

	spacing      float64
	decay        float64
	minSpacing   float64
	angleStep    float64
	maxRadius    float64
	radiusOffset float64
	theta        float64

	last    coord.Point
	hasLast bool
}

// NewRefinedSpiral validates params and returns a fresh sequence.
func NewRefinedSpiral(area coord.Area, p SpiralParams) (*RefinedSpiral, error) {
	if p.InitialSpacing <= 0 {
		return nil, fmt.Errorf("%w: initial spacing must be positive", ErrInvalidParameter)
	}
	if p.MinSpacing <= 0 {
		return nil, fmt.Errorf("%w: minimum spacing must be positive", ErrInvalidParameter)
	}
	if p.Decay <= 0 {
		return nil, fmt.Errorf("%w: spacing decay must be positive", ErrInvalidParameter)
	}
	if p.AngleStepDeg <= 0 {
		return nil, fmt.Errorf("%w: angle step must be positive", ErrInvalidParameter)
	}
	return &RefinedSpiral{
		area:       area,
		center:     area.Center(),
		spacing:    p.InitialSpacing,
		decay:      p.Decay,
		minSpacing: p.MinSpacing,
		angleStep:  p.AngleStepDeg * math.Pi / 180,
		maxRadius:  area.MaxOffset(),
	}, nil
}

func (s *RefinedSpiral) Read() (coord.Point, error) {
	for s.radiusOffset <= s.maxRadius+s.spacing {
		radius := s.radiusOffset + (s.spacing/(2*math.Pi))*s.theta
		p := s.area.Clamp(
			s.center.X+radius*math.Cos(s.theta),
			s.center.Y+radius*math.Sin(s.theta),
		)

		s.theta += s.angleStep
		if s.theta >= 2*math.Pi {
			s.theta -= 2 * math.Pi
			s.radiusOffset += s.spacing
			s.spacing = math.Max(s.minSpacing, s.spacing*s.decay)
		}

		if s.hasLast && p.Equal(s.last) {
			continue
		}
		s.last = p
		s.hasLast = true
		return p, nil
	}
	return coord.Point{}, io.EOF
}
