package pattern

import (
	"testing"

	"github.com/mastercactapus/xyplot/coord"
	"github.com/stretchr/testify/assert"
)

func TestConcentricRings(t *testing.T) {
	area := testArea(t)
	c := area.Center()

	seq, err := NewConcentricRings(area, RingsParams{Spacing: 300})
	assert.NoError(t, err)
	pts, err := Collect(seq)
	assert.NoError(t, err)

	// offset 0 degenerates to the center itself
	assert.Equal(t, c, pts[0])

	// ring 1 starts on the top edge at its left corner
	assert.Equal(t, c.Add(coord.Point{X: -300, Y: 300}), pts[1])
	// and walks left to right along the top
	assert.Equal(t, c.Add(coord.Point{X: 0, Y: 300}), pts[2])
	assert.Equal(t, c.Add(coord.Point{X: 300, Y: 300}), pts[3])
	// then down the right edge
	assert.Equal(t, c.Add(coord.Point{X: 300, Y: 0}), pts[4])
}

func TestConcentricRings_InvalidSpacing(t *testing.T) {
	area := testArea(t)

	_, err := NewConcentricRings(area, RingsParams{Spacing: -1})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
