package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrSkyle/foldcut/pkg/fnc"
	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/input"
	"github.com/DrSkyle/foldcut/pkg/policy"
)

func TestAddVertexCommits(t *testing.T) {
	s := New()
	s.Press(0.2, 0.3)

	require.Equal(t, 1, s.Graph().VertexCount())
	assert.Equal(t, 2, s.History().Len())
	assert.True(t, s.CanUndo())
	assert.Equal(t, []string{
		"(1 error)",
		"- 1 vertex is missing edges (all vertices must have 2 adjacent edges).",
	}, s.Errors().SummaryLines())
}

func TestEdgeToolNeedsTwoVertices(t *testing.T) {
	s := New()
	assert.False(t, s.SetTool(ToolAddEdge))
	assert.Equal(t, ToolAddVertex, s.Tool())

	s.AddVertex(0.1, 0.1)
	s.AddVertex(0.9, 0.9)
	assert.True(t, s.SetTool(ToolAddEdge))
	assert.Equal(t, "add-edge", s.Tool().String())
}

func TestTwoClickEdge(t *testing.T) {
	s := New()
	a := s.AddVertex(0.1, 0.1)
	b := s.AddVertex(0.9, 0.1)
	require.True(t, s.SetTool(ToolAddEdge))

	s.Press(0.1, 0.1)
	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, a, pending)
	assert.True(t, s.Graph().Vertex(a).Selected)
	assert.Equal(t, 1, s.Bus().Active(input.Cancel))

	s.Press(0.9, 0.1)
	_, ok = s.Pending()
	assert.False(t, ok)
	assert.False(t, s.Graph().Vertex(a).Selected)
	assert.Equal(t, 0, s.Bus().Active(input.Cancel))
	require.Equal(t, 1, s.Graph().EdgeCount())
	assert.True(t, s.Graph().Vertex(a).IsNeighbor(b))
}

func TestPendingEdgeCancellation(t *testing.T) {
	setup := func() (*Session, graph.VertexID, graph.VertexID, graph.VertexID) {
		s := New()
		a := s.AddVertex(0.1, 0.1)
		b := s.AddVertex(0.5, 0.1)
		c := s.AddVertex(0.9, 0.1)
		_, err := s.AddEdge(a, b)
		require.NoError(t, err)
		require.True(t, s.SetTool(ToolAddEdge))
		return s, a, b, c
	}

	t.Run("escape", func(t *testing.T) {
		s, a, _, _ := setup()
		s.SelectEndpoint(a)
		assert.True(t, s.Cancel())
		_, ok := s.Pending()
		assert.False(t, ok)
		assert.False(t, s.Cancel(), "listener released")
	})

	t.Run("same vertex twice", func(t *testing.T) {
		s, a, _, _ := setup()
		s.SelectEndpoint(a)
		s.SelectEndpoint(a)
		_, ok := s.Pending()
		assert.False(t, ok)
		assert.Equal(t, 1, s.Graph().EdgeCount())
	})

	t.Run("existing neighbor", func(t *testing.T) {
		s, a, b, _ := setup()
		s.SelectEndpoint(a)
		s.SelectEndpoint(b)
		_, ok := s.Pending()
		assert.False(t, ok)
		assert.Equal(t, 1, s.Graph().EdgeCount())
	})

	t.Run("saturated vertex", func(t *testing.T) {
		s, a, b, c := setup()
		_, err := s.AddEdge(b, c)
		require.NoError(t, err)
		s.SelectEndpoint(a)
		s.SelectEndpoint(b)
		_, ok := s.Pending()
		assert.False(t, ok)
		assert.Equal(t, 2, s.Graph().EdgeCount())

		s.SelectEndpoint(b)
		_, ok = s.Pending()
		assert.False(t, ok, "a saturated vertex never becomes pending")
	})

	t.Run("tool switch", func(t *testing.T) {
		s, a, _, _ := setup()
		s.SelectEndpoint(a)
		s.SetTool(ToolMoveVertex)
		_, ok := s.Pending()
		assert.False(t, ok)
		assert.Equal(t, 0, s.Bus().Active(input.Cancel))
	})
}

func TestDragCommitsOnceOnGlobalRelease(t *testing.T) {
	s := New()
	a := s.AddVertex(0.1, 0.1)
	b := s.AddVertex(0.9, 0.9)
	c := s.AddVertex(0.9, 0.1)
	d := s.AddVertex(0.1, 0.9)
	_, _ = s.AddEdge(a, b)
	_, _ = s.AddEdge(c, d)
	require.Equal(t, 1, s.Errors().IntersectingEdges.Len())
	before := s.History().Len()

	s.SetTool(ToolMoveVertex)
	s.Press(0.11, 0.1) // grab slightly off-center
	dragged, ok := s.Dragging()
	require.True(t, ok)
	assert.Equal(t, a, dragged)
	assert.Equal(t, 1, s.Bus().Active(input.PointerRelease))

	// Slide a to the right of the c-d diagonal region so a-b no longer crosses.
	s.Motion(0.96, 0.6)
	s.Motion(0.96, 0.5)
	v := s.Graph().Vertex(a)
	assert.InDelta(t, 0.95, v.X, 1e-12)
	assert.InDelta(t, 0.5, v.Y, 1e-12)
	assert.Equal(t, 0, s.Errors().IntersectingEdges.Len())
	assert.Equal(t, before, s.History().Len(), "no commit per frame")

	// Release arrives from outside the canvas.
	s.Bus().Dispatch(input.Event{Kind: input.PointerRelease})
	_, ok = s.Dragging()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Bus().Active(input.PointerRelease))
	assert.Equal(t, before+1, s.History().Len())

	// Undo restores the crossing.
	require.True(t, s.Undo())
	assert.Equal(t, 1, s.Errors().IntersectingEdges.Len())
}

func TestPressWithoutMoveDoesNotCommit(t *testing.T) {
	s := New()
	s.AddVertex(0.5, 0.5)
	s.SetTool(ToolMoveVertex)
	before := s.History().Len()

	s.Press(0.5, 0.5)
	s.Release(0.5, 0.5)
	assert.Equal(t, before, s.History().Len())
}

func TestErase(t *testing.T) {
	s := New()
	a := s.AddVertex(0.2, 0.2)
	b := s.AddVertex(0.8, 0.2)
	c := s.AddVertex(0.5, 0.8)
	ab, _ := s.AddEdge(a, b)
	_, _ = s.AddEdge(b, c)
	ca, _ := s.AddEdge(c, a)
	before := s.History().Len()

	// Empty paper far from everything.
	assert.False(t, s.Erase(0.9, 0.9))
	assert.Equal(t, before, s.History().Len())

	// On the a-b edge, away from its endpoints.
	require.True(t, s.Erase(0.5, 0.205))
	assert.Nil(t, s.Graph().Edge(ab))
	assert.Equal(t, 2, s.Graph().EdgeCount())

	// On vertex a: cascades c-a.
	require.True(t, s.Erase(0.2, 0.2))
	assert.Nil(t, s.Graph().Vertex(a))
	assert.Nil(t, s.Graph().Edge(ca))
	assert.Equal(t, 1, s.Graph().EdgeCount())
	assert.Equal(t, before+2, s.History().Len())
	require.NoError(t, s.Graph().CheckInvariants())
}

func TestEraseDropsPendingEndpoint(t *testing.T) {
	s := New()
	a := s.AddVertex(0.2, 0.2)
	s.AddVertex(0.8, 0.2)
	s.SetTool(ToolAddEdge)
	s.SelectEndpoint(a)

	require.True(t, s.Erase(0.2, 0.2))
	_, ok := s.Pending()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Bus().Active(input.Cancel))
}

func TestUndoRedo(t *testing.T) {
	s := New()
	assert.False(t, s.Undo())

	s.AddVertex(0.1, 0.1)
	s.AddVertex(0.2, 0.2)
	require.True(t, s.Undo())
	assert.Equal(t, 1, s.Graph().VertexCount())
	require.True(t, s.Redo())
	assert.Equal(t, 2, s.Graph().VertexCount())
	assert.False(t, s.Redo())

	require.True(t, s.Undo())
	s.AddVertex(0.3, 0.3)
	assert.False(t, s.CanRedo())
}

func TestStatePortReplacesGraph(t *testing.T) {
	s := New()
	s.AddVertex(0.5, 0.5)
	port := fnc.NewPort(s, nil)

	err := port.SetStateJSON([]byte(`{"vertices_coords": [[0,0],[1,1],[1,0],[0,1]], "edges_vertices": [[0,1],[2,3]]}`))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Graph().VertexCount())
	assert.Equal(t, 1, s.Errors().IntersectingEdges.Len())
	assert.Len(t, s.Errors().LowDegreeVertices, 4)

	require.True(t, s.Undo())
	assert.Equal(t, 1, s.Graph().VertexCount())

	err = port.SetStateJSON([]byte(`{"vertices_coords": [[0,0]], "edges_vertices": [[0,1]]}`))
	require.ErrorIs(t, err, fnc.ErrOutOfBounds)
	assert.Equal(t, 1, s.Graph().VertexCount())
}

func TestLinterFindings(t *testing.T) {
	engine, err := policy.NewEngine(nil)
	require.NoError(t, err)
	require.NoError(t, engine.Compile(policy.DefaultRules()))

	s := New(WithLinter(engine))
	s.AddVertex(1.2, 0.5)
	require.Len(t, s.Errors().Findings, 1)
	assert.Equal(t, "off-paper", s.Errors().Findings[0].RuleID)
}

func TestAimEraser(t *testing.T) {
	s := New()
	a := s.AddVertex(0.2, 0.2)
	b := s.AddVertex(0.8, 0.2)
	_, err := s.AddEdge(a, b)
	require.NoError(t, err)

	x, y := s.AimEraser(0.21, 0.19)
	assert.Equal(t, 0.2, x)
	assert.Equal(t, 0.2, y)

	x, y = s.AimEraser(0.5, 0.21)
	assert.InDelta(t, 0.5, x, 1e-12)
	assert.InDelta(t, 0.2, y, 1e-12)

	x, y = s.AimEraser(0.5, 0.6)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 0.6, y)

	assert.True(t, s.Erase(s.AimEraser(0.5, 0.21)))
	assert.Equal(t, 0, s.Graph().EdgeCount())
}
