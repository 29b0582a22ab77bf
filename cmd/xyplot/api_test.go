package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/mastercactapus/xyplot/coord"
	"github.com/mastercactapus/xyplot/pattern"
	"github.com/stretchr/testify/assert"
)

func TestAPI(t *testing.T) {
	area, err := coord.NewArea(1250, 1250, 10)
	assert.NoError(t, err)
	a := newAPI(area, "")

	w := httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest("GET", "/api/patterns", nil))
	assert.Equal(t, 200, w.Code)
	var names []string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	assert.Equal(t, pattern.Names(), names)

	w = httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest("GET", "/api/patterns/hilbert?stride=16", nil))
	assert.Equal(t, 200, w.Code)
	var pts []coord.Point
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pts))
	assert.Len(t, pts, 256) // 4096 points at stride 16

	w = httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest("GET", "/api/patterns/hilbert?stride=zero", nil))
	assert.Equal(t, 400, w.Code)

	w = httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest("GET", "/api/patterns/nope", nil))
	assert.Equal(t, 404, w.Code)

	w = httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest("GET", "/api/patterns/serpentine_100/coverage", nil))
	assert.Equal(t, 200, w.Code)
	var stats pattern.CoverageStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.True(t, stats.Points > 0)
	assert.True(t, stats.MaxEdge > 0)
}
