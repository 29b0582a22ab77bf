// Package pattern provides lazily-evaluated point sequences that cover a
// rectangular work area.
//
// Every generator validates its parameters up front and then produces a
// finite, deterministic sequence; constructing the same generator twice
// yields the same points.
package pattern

import (
	"errors"
	"io"
	"math"

	"github.com/mastercactapus/xyplot/coord"
)

// ErrInvalidParameter is returned when a generator parameter is out of
// its valid domain. It is always returned at construction time, never
// mid-sequence.
var ErrInvalidParameter = errors.New("pattern: invalid parameter")

// A Sequence produces points one at a time.
//
// Read returns io.EOF after the final point.
type Sequence interface {
	Read() (coord.Point, error)
}

// Collect will read all remaining points from a sequence.
func Collect(s Sequence) ([]coord.Point, error) {
	var pts []coord.Point
	for {
		p, err := s.Read()
		if err == io.EOF {
			return pts, nil
		}
		if err != nil {
			return pts, err
		}
		pts = append(pts, p)
	}
}

// stepCount reports how many values an arange-style half-open range
// [start, stop) holds when stepping by step. step may be negative.
func stepCount(start, stop, step float64) int {
	n := math.Ceil((stop - start) / step)
	if math.IsNaN(n) || n < 0 {
		return 0
	}
	return int(n)
}
