package pattern

import (
	"fmt"
	"io"

	"github.com/mastercactapus/xyplot/coord"
)

// RingsParams configure concentric square rings.
type RingsParams struct {
	// Spacing is the gap between rings and between points along an edge.
	Spacing float64
}

// DefaultRings are the stock concentric square parameters.
var DefaultRings = RingsParams{Spacing: 80}

// ConcentricRings walks successive square perimeters expanding from the
// center of the work area. Each ring is traced top edge left-to-right,
// right edge top-to-bottom, bottom edge right-to-left, then left edge
// bottom-to-top.
type ConcentricRings struct {
	area    coord.Area
	spacing float64
	center  coord.Point

	offsets  int
	oi, edge int

	i, count    int
	start, step float64
	fixed       float64
	alongY      bool
	edgeLoaded  bool
}

// NewConcentricRings validates params and returns a fresh sequence.
func NewConcentricRings(area coord.Area, p RingsParams) (*ConcentricRings, error) {
	if p.Spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing must be positive", ErrInvalidParameter)
	}
	return &ConcentricRings{
		area:    area,
		spacing: p.Spacing,
		center:  area.Center(),
		offsets: stepCount(0, area.InscribedRadius()+p.Spacing/2, p.Spacing),
	}, nil
}

func (r *ConcentricRings) loadEdge() {
	o := float64(r.oi) * r.spacing
	left := r.center.X - o
	right := r.center.X + o
	bottom := r.center.Y - o
	top := r.center.Y + o
	sp := r.spacing

	switch r.edge {
	case 0: // top edge, left -> right
		r.start, r.step, r.fixed, r.alongY = left, sp, top, false
		r.count = stepCount(left, right+sp/2, sp)
	case 1: // right edge, top -> bottom
		r.start, r.step, r.fixed, r.alongY = top-sp, -sp, right, true
		r.count = stepCount(top-sp, bottom-sp/2, -sp)
	case 2: // bottom edge, right -> left
		r.start, r.step, r.fixed, r.alongY = right-sp, -sp, bottom, false
		r.count = stepCount(right-sp, left-sp/2, -sp)
	case 3: // left edge, bottom -> top
		r.start, r.step, r.fixed, r.alongY = bottom+sp, sp, left, true
		r.count = stepCount(bottom+sp, top+sp/2, sp)
	}
	r.i = 0
	r.edgeLoaded = true
}

func (r *ConcentricRings) Read() (coord.Point, error) {
	for {
		if r.oi >= r.offsets {
			return coord.Point{}, io.EOF
		}
		if !r.edgeLoaded {
			r.loadEdge()
		}
		if r.i >= r.count {
			r.edgeLoaded = false
			r.edge++
			if r.edge > 3 {
				r.edge = 0
				r.oi++
			}
			continue
		}

		v := r.start + float64(r.i)*r.step
		r.i++
		if r.alongY {
			return r.area.Clamp(r.fixed, v), nil
		}
		return r.area.Clamp(v, r.fixed), nil
	}
}
