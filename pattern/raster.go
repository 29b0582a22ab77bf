package pattern

import (
	"fmt"
	"io"

	"github.com/mastercactapus/xyplot/coord"
)

// RasterParams configure a multi-pass raster that densifies on each pass.
type RasterParams struct {
	InitialSpacing float64

	// Passes is the total number of raster sweeps.
	Passes int

	// Decay multiplies the spacing after each pass. Must be in (0, 1]
	// to be useful; values above 1 sparsify instead.
	Decay float64
}

// DefaultRaster are the stock progressive raster parameters.
var DefaultRaster = RasterParams{InitialSpacing: 300, Passes: 4, Decay: 0.5}

// ProgressiveRaster repeats a serpentine raster, shrinking the spacing by
// Decay after each pass. Zero passes yields an empty sequence.
type ProgressiveRaster struct {
	area    coord.Area
	spacing float64
	decay   float64

	pass, passes int
	cur          *Serpentine
}

// NewProgressiveRaster validates params and returns a fresh sequence.
func NewProgressiveRaster(area coord.Area, p RasterParams) (*ProgressiveRaster, error) {
	if p.InitialSpacing <= 0 {
		return nil, fmt.Errorf("%w: initial spacing must be positive", ErrInvalidParameter)
	}
	if p.Decay <= 0 {
		return nil, fmt.Errorf("%w: spacing decay must be positive", ErrInvalidParameter)
	}
	return &ProgressiveRaster{
		area:    area,
		spacing: p.InitialSpacing,
		decay:   p.Decay,
		passes:  p.Passes,
	}, nil
}

func (r *ProgressiveRaster) Read() (coord.Point, error) {
	for {
		if r.cur == nil {
			if r.pass >= r.passes || r.spacing <= 0 {
				return coord.Point{}, io.EOF
			}
			s, err := NewSerpentine(r.area, SerpentineParams{Spacing: r.spacing})
			if err != nil {
				return coord.Point{}, err
			}
			r.cur = s
		}

		p, err := r.cur.Read()
		if err == io.EOF {
			r.cur = nil
			r.pass++
			r.spacing *= r.decay
			continue
		}
		return p, err
	}
}
