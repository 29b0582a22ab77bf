package pattern

import (
	"fmt"
	"io"

	"github.com/mastercactapus/xyplot/coord"
)

// SerpentineParams configure a zig-zag raster scan.
type SerpentineParams struct {
	// Spacing is the distance between both rows and columns.
	Spacing float64
}

// DefaultSerpentine are the stock raster parameters.
var DefaultSerpentine = SerpentineParams{Spacing: 100}

// Serpentine walks a boustrophedon raster: rows bottom to top, even rows
// left to right, odd rows right to left.
type Serpentine struct {
	area    coord.Area
	spacing float64

	cols, rows int
	col, row   int
}

// NewSerpentine validates params and returns a fresh raster sequence.
func NewSerpentine(area coord.Area, p SerpentineParams) (*Serpentine, error) {
	if p.Spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing must be positive", ErrInvalidParameter)
	}
	return &Serpentine{
		area:    area,
		spacing: p.Spacing,

		// rows/columns span min..max inclusive of a half-step tolerance
		cols: stepCount(area.XMin(), area.XMax()+p.Spacing/2, p.Spacing),
		rows: stepCount(area.YMin(), area.YMax()+p.Spacing/2, p.Spacing),
	}, nil
}

func (s *Serpentine) Read() (coord.Point, error) {
	if s.row >= s.rows {
		return coord.Point{}, io.EOF
	}

	col := s.col
	if s.row%2 == 1 {
		col = s.cols - 1 - col
	}
	p := s.area.Clamp(
		s.area.XMin()+float64(col)*s.spacing,
		s.area.YMin()+float64(s.row)*s.spacing,
	)

	s.col++
	if s.col >= s.cols {
		s.col = 0
		s.row++
	}
	return p, nil
}
