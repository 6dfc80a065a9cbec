package session

import (
	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/input"
	"github.com/DrSkyle/foldcut/pkg/validate"
)

// Tool is the active editing mode.
type Tool int

const (
	ToolAddVertex Tool = iota
	ToolMoveVertex
	ToolAddEdge
)

func (t Tool) String() string {
	switch t {
	case ToolAddVertex:
		return "add-vertex"
	case ToolMoveVertex:
		return "move-vertex"
	case ToolAddEdge:
		return "add-edge"
	}
	return "unknown"
}

// Tool returns the active editing mode.
func (s *Session) Tool() Tool { return s.tool }

// SetTool switches modes. Leaving the edge tool drops a pending endpoint.
// The edge tool needs at least two vertices; SetTool reports false otherwise.
func (s *Session) SetTool(t Tool) bool {
	if t == ToolAddEdge && s.graph.VertexCount() < 2 {
		return false
	}
	if t != ToolAddEdge {
		s.CancelPending()
	}
	if t != ToolMoveVertex {
		s.endDrag(true)
	}
	s.tool = t
	return true
}

// Press handles a primary-button press at paper coordinates.
func (s *Session) Press(x, y float64) {
	s.pointer.X, s.pointer.Y = x, y
	switch s.tool {
	case ToolAddVertex:
		s.AddVertex(x, y)
	case ToolMoveVertex:
		if v, ok := s.VertexAt(x, y); ok {
			s.BeginDrag(v, x, y)
		}
	case ToolAddEdge:
		if v, ok := s.VertexAt(x, y); ok {
			s.SelectEndpoint(v)
		}
	}
}

// Motion tracks the pointer and moves the dragged vertex, if any.
func (s *Session) Motion(x, y float64) {
	s.pointer.X, s.pointer.Y = x, y
	if s.drag == nil || s.tool != ToolMoveVertex {
		return
	}
	d := s.drag
	if !s.graph.MoveVertex(d.vertex, x-d.offsetX, y-d.offsetY) {
		return
	}
	d.moved = true
	// Per-frame moves only refresh validation; the commit happens on release.
	v := s.graph.Vertex(d.vertex)
	s.errors.RefreshEdges(s.graph, v.IncidentEdges()...)
}

// Release broadcasts a pointer release, wherever it happened.
func (s *Session) Release(x, y float64) {
	s.pointer.X, s.pointer.Y = x, y
	s.bus.Dispatch(input.Event{Kind: input.PointerRelease, X: x, Y: y})
}

// Cancel broadcasts a cancel signal. It reports whether anything listened.
func (s *Session) Cancel() bool {
	return s.bus.Dispatch(input.Event{Kind: input.Cancel, X: s.pointer.X, Y: s.pointer.Y}) > 0
}

// BeginDrag grabs v, keeping the offset between the grab point and the
// vertex so it does not jump under the pointer.
func (s *Session) BeginDrag(v graph.VertexID, x, y float64) {
	vert := s.graph.Vertex(v)
	if vert == nil {
		return
	}
	s.endDrag(true)
	s.drag = &dragState{
		vertex:  v,
		offsetX: x - vert.X,
		offsetY: y - vert.Y,
	}
	s.releaseDrag = s.bus.Acquire(input.PointerRelease, func(input.Event) {
		s.endDrag(true)
	})
}

// Dragging returns the vertex being dragged.
func (s *Session) Dragging() (graph.VertexID, bool) {
	if s.drag == nil {
		return graph.InvalidID, false
	}
	return s.drag.vertex, true
}

func (s *Session) endDrag(commit bool) {
	if s.releaseDrag != nil {
		s.releaseDrag()
		s.releaseDrag = nil
	}
	d := s.drag
	s.drag = nil
	if d == nil || !d.moved || !commit {
		return
	}
	if v := s.graph.Vertex(d.vertex); v != nil {
		s.afterEdit("move vertex", v.IncidentEdges(), nil)
	}
}

// Pending returns the first endpoint of the edge being drawn.
func (s *Session) Pending() (graph.VertexID, bool) {
	return s.pending, s.pending != graph.InvalidID
}

// SelectEndpoint drives the two-click edge tool. A saturated vertex, the
// pending vertex itself or one of its neighbors cancels the pending edge.
func (s *Session) SelectEndpoint(v graph.VertexID) {
	vert := s.graph.Vertex(v)
	if vert == nil {
		return
	}
	switch {
	case vert.Degree() >= validate.MinDegree:
		s.CancelPending()
	case s.pending == graph.InvalidID:
		s.pending = v
		s.graph.SetSelected(v, true)
		s.releaseCancel = s.bus.Acquire(input.Cancel, func(input.Event) {
			s.CancelPending()
		})
	case s.pending == v || vert.IsNeighbor(s.pending):
		s.logger.Debug("Tried to add an existing edge", "from", s.pending, "to", v)
		s.CancelPending()
	default:
		from := s.pending
		s.CancelPending()
		if _, err := s.AddEdge(from, v); err != nil {
			s.logger.Warn("Edge rejected", "from", from, "to", v, "error", err)
		}
	}
}

// CancelPending drops the pending endpoint, if any.
func (s *Session) CancelPending() {
	if s.releaseCancel != nil {
		s.releaseCancel()
		s.releaseCancel = nil
	}
	if s.pending != graph.InvalidID {
		s.graph.SetSelected(s.pending, false)
		s.pending = graph.InvalidID
	}
}
