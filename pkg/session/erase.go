package session

import (
	"github.com/DrSkyle/foldcut/pkg/geom"
	"github.com/DrSkyle/foldcut/pkg/graph"
)

// Erase removes every vertex within 1.1 vertex radii of (x, y), with its
// edges, and every edge passing within two edge widths. It reports whether
// anything was removed; nothing is committed otherwise.
func (s *Session) Erase(x, y float64) bool {
	p := geom.Point{X: x, Y: y}
	vertexReach := 1.1 * s.cfg.VertexRadius
	edgeReach := 2 * s.cfg.EdgeWidth

	var removed []graph.EdgeID
	var gone []graph.VertexID
	for _, v := range s.graph.Vertices() {
		if v.Point().Dist(p) <= vertexReach {
			gone = append(gone, v.ID)
		}
	}
	for _, id := range gone {
		s.dropModal(id)
		removed = append(removed, s.graph.RemoveVertex(id)...)
	}

	for _, e := range s.graph.Edges() {
		seg, ok := s.graph.Segment(e.ID)
		if ok && geom.DistanceToSegment(p, seg) < edgeReach {
			s.graph.RemoveEdge(e.ID)
			removed = append(removed, e.ID)
		}
	}

	if len(gone) == 0 && len(removed) == 0 {
		return false
	}
	s.afterEdit("erase", nil, removed)
	return true
}

// dropModal clears modal state that refers to a vertex about to vanish.
func (s *Session) dropModal(v graph.VertexID) {
	if s.pending == v {
		s.CancelPending()
	}
	if s.drag != nil && s.drag.vertex == v {
		s.endDrag(false)
	}
}

// AimEraser returns the eraser position for a coarse pointer at (x, y): the
// nearest vertex within the pick radius, else the nearest point on an edge
// within it, else (x, y). Placement never goes through it.
func (s *Session) AimEraser(x, y float64) (float64, float64) {
	if v, ok := s.VertexAt(x, y); ok {
		vert := s.graph.Vertex(v)
		return vert.X, vert.Y
	}

	p := geom.Point{X: x, Y: y}
	best, bestDist := p, s.cfg.PickRadius
	found := false
	for _, e := range s.graph.Edges() {
		seg, ok := s.graph.Segment(e.ID)
		if !ok {
			continue
		}
		q := geom.ClosestPoint(p, seg)
		if d := q.Dist(p); d <= bestDist {
			best, bestDist, found = q, d, true
		}
	}
	if !found {
		return x, y
	}
	return best.X, best.Y
}
