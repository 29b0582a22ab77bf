package pattern

import (
	"errors"
	"math"

	"github.com/fogleman/delaunay"
	"github.com/mastercactapus/xyplot/coord"
)

// CoverageStats summarize how evenly a point set covers the plane.
type CoverageStats struct {
	Points    int
	Triangles int

	// Area is the total area of the triangulated hull.
	Area float64

	// MaxEdge is the longest triangle edge; it bounds the largest gap
	// between neighboring visits.
	MaxEdge float64
}

// Coverage triangulates a visited point set and reports gap statistics.
// It needs at least 3 non-collinear points.
func Coverage(pts []coord.Point) (CoverageStats, error) {
	if len(pts) < 3 {
		return CoverageStats{}, errors.New("pattern: need at least 3 points for coverage stats")
	}

	dp := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		dp[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tri, err := delaunay.Triangulate(dp)
	if err != nil {
		return CoverageStats{}, err
	}

	stats := CoverageStats{
		Points:    len(pts),
		Triangles: len(tri.Triangles) / 3,
	}
	edge := func(a, b delaunay.Point) float64 {
		return math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	for i := 0; i < len(tri.Triangles); i += 3 {
		a := dp[tri.Triangles[i]]
		b := dp[tri.Triangles[i+1]]
		c := dp[tri.Triangles[i+2]]

		stats.MaxEdge = math.Max(stats.MaxEdge, edge(a, b))
		stats.MaxEdge = math.Max(stats.MaxEdge, edge(b, c))
		stats.MaxEdge = math.Max(stats.MaxEdge, edge(c, a))

		stats.Area += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	return stats, nil
}
