package pattern

import (
	"fmt"
	"io"

	"github.com/mastercactapus/xyplot/coord"
)

// HilbertParams configure a Hilbert space-filling curve.
type HilbertParams struct {
	// Order sets the grid to 2^Order cells per side; the curve visits
	// all 4^Order cells exactly once.
	Order int
}

// DefaultHilbert are the stock Hilbert curve parameters.
var DefaultHilbert = HilbertParams{Order: 6}

// HilbertCurve maps the curve onto the largest square inscribed in the
// work area. Consecutive points are always adjacent grid cells, so the
// path never crosses itself.
type HilbertCurve struct {
	area coord.Area

	grid  int
	total int
	denom float64

	origin coord.Point
	size   float64

	d int
}

// NewHilbertCurve validates params and returns a fresh sequence.
func NewHilbertCurve(area coord.Area, p HilbertParams) (*HilbertCurve, error) {
	if p.Order < 1 {
		return nil, fmt.Errorf("%w: order must be >= 1", ErrInvalidParameter)
	}
	grid := 1 << uint(p.Order)
	origin, size := area.InscribedSquare()

	denom := float64(grid - 1)
	if denom < 1 {
		denom = 1
	}
	return &HilbertCurve{
		area:   area,
		grid:   grid,
		total:  grid * grid,
		denom:  denom,
		origin: origin,
		size:   size,
	}, nil
}

// hilbertD2XY converts a Hilbert curve distance d to grid coordinates on
// an n x n grid using the standard bit-unrotation recurrence.
func hilbertD2XY(n, d int) (x, y int) {
	t := d
	for s := 1; s < n; s *= 2 {
		rx := 1 & (t / 2)
		ry := 1 & (t ^ rx)
		if ry == 0 {
			if rx == 1 {
				x = s - 1 - x
				y = s - 1 - y
			}
			x, y = y, x
		}
		x += s * rx
		y += s * ry
		t /= 4
	}
	return x, y
}

func (h *HilbertCurve) Read() (coord.Point, error) {
	if h.d >= h.total {
		return coord.Point{}, io.EOF
	}
	gx, gy := hilbertD2XY(h.grid, h.d)
	h.d++
	return h.area.Clamp(
		h.origin.X+float64(gx)/h.denom*h.size,
		h.origin.Y+float64(gy)/h.denom*h.size,
	), nil
}
