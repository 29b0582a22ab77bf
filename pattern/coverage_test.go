package pattern

import (
	"testing"

	"github.com/mastercactapus/xyplot/coord"
	"github.com/stretchr/testify/assert"
)

func TestCoverage(t *testing.T) {
	// unit square plus its center
	pts := []coord.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
		{X: 0.5, Y: 0.5},
	}
	stats, err := Coverage(pts)
	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Points)
	assert.Equal(t, 4, stats.Triangles)
	assert.InDelta(t, 1.0, stats.Area, 1e-9)
	assert.InDelta(t, 1.0, stats.MaxEdge, 1e-9)

	_, err = Coverage(pts[:2])
	assert.Error(t, err)
}

func TestCoverage_Pattern(t *testing.T) {
	area := testArea(t)

	seq, err := NewHilbertCurve(area, HilbertParams{Order: 3})
	assert.NoError(t, err)
	pts, err := Collect(seq)
	assert.NoError(t, err)

	stats, err := Coverage(pts)
	assert.NoError(t, err)
	assert.Equal(t, 64, stats.Points)
	// hull is the full inscribed square
	assert.InDelta(t, 1230*1230, stats.Area, 1e-6)
	// neighbors are never farther apart than one grid diagonal
	assert.True(t, stats.MaxEdge <= 1230.0/7*1.5)
}
