package grbl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("<Idle|WPos:10.000,10.000,0.000>")
	assert.True(t, ok)
	assert.Equal(t, "Idle", st.State)
	assert.Equal(t, "WPos", st.Label)
	assert.Equal(t, []float64{10, 10, 0}, st.Coords)
	assert.True(t, st.Idle())

	st, ok = ParseStatus("<Run|MPos:1.5,-2,3|FS:500,0>")
	assert.True(t, ok)
	assert.Equal(t, "Run", st.State)
	assert.Equal(t, "MPos", st.Label)
	assert.Equal(t, []float64{1.5, -2, 3}, st.Coords)
	assert.False(t, st.Idle())

	// state only, no position
	st, ok = ParseStatus("<Home>")
	assert.True(t, ok)
	assert.Equal(t, "Home", st.State)
	assert.Equal(t, "", st.Label)
	assert.Nil(t, st.Coords)

	// extra coordinates are capped at three
	st, ok = ParseStatus("<Idle|WPos:1,2,3,4>")
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, st.Coords)
}

func TestParseStatus_Malformed(t *testing.T) {
	bad := []string{
		"",
		"ok",
		"error:9",
		"Grbl 1.1f ['$' for help]",
		"<Idle|WPos:1,2,3", // unterminated
		"<>",
		"<Idle|WPos:one,two>",
	}
	for _, line := range bad {
		_, ok := ParseStatus(line)
		assert.False(t, ok, "should reject %q", line)
	}
}

func TestStatus_String(t *testing.T) {
	st, ok := ParseStatus("<Idle|WPos:10,10.5,0>")
	assert.True(t, ok)
	assert.Equal(t, "Idle WPos: 10.000, 10.500, 0.000", st.String())

	st, ok = ParseStatus("<Alarm>")
	assert.True(t, ok)
	assert.Equal(t, "Alarm", st.String())
}
