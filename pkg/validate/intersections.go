// Package validate computes the structural findings of a crease pattern:
// crossing edge pairs and vertices missing edges.
package validate

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/DrSkyle/foldcut/pkg/geom"
	"github.com/DrSkyle/foldcut/pkg/graph"
)

// Pair is an unordered edge pair stored canonically with A < B.
type Pair struct {
	A graph.EdgeID
	B graph.EdgeID
}

// NewPair orders a and b.
func NewPair(a, b graph.EdgeID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Has reports whether e is part of the pair.
func (p Pair) Has(e graph.EdgeID) bool {
	return p.A == e || p.B == e
}

func pairComparator(a, b interface{}) int {
	pa, pb := a.(Pair), b.(Pair)
	switch {
	case pa.A < pb.A:
		return -1
	case pa.A > pb.A:
		return 1
	case pa.B < pb.B:
		return -1
	case pa.B > pb.B:
		return 1
	}
	return 0
}

// Intersects reports whether two edges of g cross. Edges sharing an endpoint
// meet at a fold point and never count as crossing.
func Intersects(g *graph.Graph, e1, e2 graph.EdgeID) bool {
	if e1 == e2 || g.SharesEndpoint(e1, e2) {
		return false
	}
	// Evaluate in canonical order so rounding can never break symmetry.
	if e2 < e1 {
		e1, e2 = e2, e1
	}
	s1, ok1 := g.Segment(e1)
	s2, ok2 := g.Segment(e2)
	if !ok1 || !ok2 {
		return false
	}
	return geom.SegmentsIntersect(s1, s2)
}

// PairSet is the ordered set of crossing edge pairs. Iteration follows edge
// collection order, and re-inserting a pair is a no-op.
type PairSet struct {
	set *treeset.Set
}

// NewPairSet returns an empty set.
func NewPairSet() *PairSet {
	return &PairSet{set: treeset.NewWith(pairComparator)}
}

// FullRebuild tests every unordered pair of edges. O(E^2).
func FullRebuild(g *graph.Graph) *PairSet {
	ps := NewPairSet()
	edges := g.Edges()
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			if Intersects(g, edges[i].ID, edges[j].ID) {
				ps.Add(NewPair(edges[i].ID, edges[j].ID))
			}
		}
	}
	return ps
}

// Add inserts p.
func (ps *PairSet) Add(p Pair) {
	ps.set.Add(NewPair(p.A, p.B))
}

// Contains reports whether the unordered pair (a, b) is recorded.
func (ps *PairSet) Contains(a, b graph.EdgeID) bool {
	return ps.set.Contains(NewPair(a, b))
}

// ForgetEdge drops every pair mentioning e.
func (ps *PairSet) ForgetEdge(e graph.EdgeID) {
	var stale []interface{}
	for _, v := range ps.set.Values() {
		if v.(Pair).Has(e) {
			stale = append(stale, v)
		}
	}
	ps.set.Remove(stale...)
}

// UpdateEdge is the incremental strategy: forget the pairs of e, then test e
// against every other current edge. A missing e only forgets.
func (ps *PairSet) UpdateEdge(g *graph.Graph, e graph.EdgeID) {
	ps.ForgetEdge(e)
	if g.Edge(e) == nil {
		return
	}
	for _, other := range g.Edges() {
		if other.ID != e && Intersects(g, e, other.ID) {
			ps.Add(NewPair(e, other.ID))
		}
	}
}

// Len returns the number of recorded pairs.
func (ps *PairSet) Len() int {
	return ps.set.Size()
}

// Pairs returns the recorded pairs in canonical order.
func (ps *PairSet) Pairs() []Pair {
	values := ps.set.Values()
	out := make([]Pair, len(values))
	for i, v := range values {
		out[i] = v.(Pair)
	}
	return out
}

// Crossing is a recorded pair plus where the edges meet.
type Crossing struct {
	Pair
	At geom.Point
}

// Crossings resolves the intersection point of every recorded pair against
// the current geometry. Pairs whose edges vanished are skipped.
func (ps *PairSet) Crossings(g *graph.Graph) []Crossing {
	var out []Crossing
	for _, p := range ps.Pairs() {
		s1, ok1 := g.Segment(p.A)
		s2, ok2 := g.Segment(p.B)
		if !ok1 || !ok2 {
			continue
		}
		at, ok := geom.IntersectionPoint(s1, s2)
		if !ok {
			continue
		}
		out = append(out, Crossing{Pair: p, At: at})
	}
	return out
}
