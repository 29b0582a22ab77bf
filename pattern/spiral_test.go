package pattern

import (
	"testing"

	"github.com/mastercactapus/xyplot/coord"
	"github.com/stretchr/testify/assert"
)

func TestRefinedSpiral(t *testing.T) {
	area := testArea(t)

	seq, err := NewRefinedSpiral(area, DefaultSpiral)
	assert.NoError(t, err)
	pts, err := Collect(seq)
	assert.NoError(t, err)
	assert.NotEmpty(t, pts)

	// starts at the center
	assert.Equal(t, area.Center(), pts[0])

	// no consecutive duplicates after clamping
	for i := 1; i < len(pts); i++ {
		assert.False(t, pts[i].Equal(pts[i-1]), "duplicate at %d: %v", i, pts[i])
	}
}

// Tight parameters must still terminate.
func TestRefinedSpiral_Terminates(t *testing.T) {
	area, err := coord.NewArea(100, 100, 10)
	assert.NoError(t, err)

	seq, err := NewRefinedSpiral(area, SpiralParams{
		InitialSpacing: 1,
		Decay:          0.99,
		MinSpacing:     0.5,
		AngleStepDeg:   0.5,
	})
	assert.NoError(t, err)
	pts, err := Collect(seq)
	assert.NoError(t, err)
	assert.True(t, len(pts) > 1000)
}

func TestRefinedSpiral_InvalidParams(t *testing.T) {
	area := testArea(t)

	bad := []SpiralParams{
		{InitialSpacing: 0, Decay: 0.65, MinSpacing: 35, AngleStepDeg: 6},
		{InitialSpacing: 250, Decay: 0, MinSpacing: 35, AngleStepDeg: 6},
		{InitialSpacing: 250, Decay: 0.65, MinSpacing: 0, AngleStepDeg: 6},
		{InitialSpacing: 250, Decay: 0.65, MinSpacing: 35, AngleStepDeg: -1},
	}
	for _, p := range bad {
		_, err := NewRefinedSpiral(area, p)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}
