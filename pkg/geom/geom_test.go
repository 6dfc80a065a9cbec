package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seg(x1, y1, x2, y2 float64) Segment {
	return Segment{A: Point{x1, y1}, B: Point{x2, y2}}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name string
		s1   Segment
		s2   Segment
		want bool
	}{
		{"crossing diagonals", seg(0, 0, 1, 1), seg(1, 0, 0, 1), true},
		{"square sides", seg(0, 0, 1, 0), seg(1, 1, 0, 1), false},
		{"parallel", seg(0, 0, 1, 0), seg(0, 0.5, 1, 0.5), false},
		{"collinear overlap", seg(0, 0, 1, 0), seg(0.5, 0, 1.5, 0), false},
		{"t junction at endpoint", seg(0, 0, 1, 0), seg(0.5, 0, 0.5, 1), true},
		{"miss beyond end", seg(0, 0, 0.4, 0.4), seg(1, 0, 0, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SegmentsIntersect(tc.s1, tc.s2))
			assert.Equal(t, tc.want, SegmentsIntersect(tc.s2, tc.s1), "symmetry")
		})
	}
}

func TestIntersectionPoint(t *testing.T) {
	p, ok := IntersectionPoint(seg(0, 0, 1, 1), seg(1, 0, 0, 1))
	assert.True(t, ok)
	assert.InDelta(t, 0.5, p.X, 1e-12)
	assert.InDelta(t, 0.5, p.Y, 1e-12)

	_, ok = IntersectionPoint(seg(0, 0, 1, 0), seg(0, 1, 1, 1))
	assert.False(t, ok)
}

func TestDistanceToSegment(t *testing.T) {
	s := seg(0, 0, 1, 0)
	assert.InDelta(t, 0.5, DistanceToSegment(Point{0.5, 0.5}, s), 1e-12)
	assert.InDelta(t, math.Sqrt2, DistanceToSegment(Point{2, 1}, s), 1e-12)
	assert.InDelta(t, 1.0, DistanceToSegment(Point{0, 1}, seg(0, 0, 0, 0)), 1e-12)
}

func TestClosestPoint(t *testing.T) {
	s := seg(0, 0, 1, 0)
	assert.Equal(t, Point{0.25, 0}, ClosestPoint(Point{0.25, 0.4}, s))
	assert.Equal(t, Point{1, 0}, ClosestPoint(Point{3, -1}, s))
	assert.Equal(t, Point{0.5, 0.5}, ClosestPoint(Point{0, 0}, seg(0.5, 0.5, 0.5, 0.5)))
}

func TestInUnitSquare(t *testing.T) {
	assert.True(t, Point{0, 1}.InUnitSquare())
	assert.False(t, Point{-0.01, 0.5}.InUnitSquare())
	assert.False(t, Point{0.5, 1.2}.InUnitSquare())
}
