// Package geom holds the planar primitives used by the crease pattern model.
package geom

import "math"

// Point is a location on the paper. The paper is the unit square.
type Point struct {
	X float64
	Y float64
}

// Segment is the straight line between A and B.
type Segment struct {
	A Point
	B Point
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// InUnitSquare reports whether p lies on the paper, borders included.
func (p Point) InUnitSquare() bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

// Length returns the length of s.
func (s Segment) Length() float64 {
	return s.A.Dist(s.B)
}

// Intersect runs the parametric line test for s1 = P1P2 and s2 = P3P4.
// ok is false when the lines are parallel or collinear (denominator zero);
// ua and ub are then meaningless.
func Intersect(s1, s2 Segment) (ua, ub float64, ok bool) {
	x1, y1 := s1.A.X, s1.A.Y
	x2, y2 := s1.B.X, s1.B.Y
	x3, y3 := s2.A.X, s2.A.Y
	x4, y4 := s2.B.X, s2.B.Y

	denom := (y4-y3)*(x2-x1) - (x4-x3)*(y2-y1)
	if denom == 0 {
		return 0, 0, false
	}

	ua = ((x4-x3)*(y1-y3) - (y4-y3)*(x1-x3)) / denom
	ub = ((x2-x1)*(y1-y3) - (y2-y1)*(x1-x3)) / denom
	return ua, ub, true
}

// SegmentsIntersect reports whether the closed segments cross.
// Touching at an endpoint counts; collinear overlap does not.
func SegmentsIntersect(s1, s2 Segment) bool {
	ua, ub, ok := Intersect(s1, s2)
	if !ok {
		return false
	}
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// IntersectionPoint returns where the supporting lines of s1 and s2 meet.
// It does not check that the point lies on both segments.
func IntersectionPoint(s1, s2 Segment) (Point, bool) {
	ua, _, ok := Intersect(s1, s2)
	if !ok {
		return Point{}, false
	}
	return Point{
		X: s1.A.X + ua*(s1.B.X-s1.A.X),
		Y: s1.A.Y + ua*(s1.B.Y-s1.A.Y),
	}, true
}

// ClosestPoint returns the point of s nearest to p. A degenerate segment
// yields its start.
func ClosestPoint(p Point, s Segment) Point {
	length := s.Length()
	if length == 0 {
		return s.A
	}

	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / (length * length)
	t = math.Max(0, math.Min(1, t))

	return Point{X: s.A.X + t*dx, Y: s.A.Y + t*dy}
}

// DistanceToSegment returns the distance from p to the closest point of s.
func DistanceToSegment(p Point, s Segment) float64 {
	return p.Dist(ClosestPoint(p, s))
}
