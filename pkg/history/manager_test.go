package history

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrSkyle/foldcut/pkg/graph"
)

func triangle() *graph.Graph {
	g := graph.New()
	a := g.AddVertex(0.1, 0.1)
	b := g.AddVertex(0.9, 0.1)
	c := g.AddVertex(0.5, 0.8)
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(b, c)
	_, _ = g.AddEdge(c, a)
	return g
}

func TestInitialState(t *testing.T) {
	m := NewManager()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, Empty(), m.Current())
}

func TestUndoBoundary(t *testing.T) {
	m := NewManager()
	g := graph.New()
	const n = 4
	for i := 0; i < n; i++ {
		g.AddVertex(float64(i)/n, 0.5)
		m.SaveState(g, "add vertex")
	}

	for i := 0; i < n; i++ {
		require.True(t, m.CanUndo())
		_, ok := m.Undo()
		require.True(t, ok)
	}
	assert.False(t, m.CanUndo())
	assert.Equal(t, 0, m.Index())

	got, ok := m.Undo()
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, 0, m.Index())
}

func TestUndoRedoRebuildsGraph(t *testing.T) {
	m := NewManager()
	g := triangle()
	m.SaveState(g, "triangle")

	empty, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, empty.VertexCount())

	redone, ok := m.Redo()
	require.True(t, ok)
	require.NoError(t, redone.CheckInvariants())
	assert.Equal(t, Capture(g, nil), Capture(redone, nil))
	for _, v := range redone.Vertices() {
		assert.Equal(t, 2, v.Degree())
	}

	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestRedoBranchDiscard(t *testing.T) {
	m := NewManager()
	g := graph.New()

	g.AddVertex(0.1, 0.1)
	m.SaveState(g, "A")
	g.AddVertex(0.2, 0.2)
	m.SaveState(g, "B")

	g, _ = m.Undo()
	g.AddVertex(0.3, 0.3)
	m.SaveState(g, "C")

	assert.False(t, m.CanRedo())
	assert.Equal(t, 3, m.Len())

	var reasons []string
	for _, e := range m.Entries() {
		reasons = append(reasons, e.Reason)
	}
	assert.Equal(t, []string{"initial", "A", "C"}, reasons)
	assert.Equal(t, [][2]float64{{0.1, 0.1}, {0.3, 0.3}}, m.Current().VerticesCoords)
}

func TestHistoryDoesNotAliasWorkingGraph(t *testing.T) {
	m := NewManager()
	g := triangle()
	m.SaveState(g, "triangle")
	before := m.Current()

	for _, v := range g.Vertices() {
		g.MoveVertex(v.ID, 0, 0)
	}
	g.RemoveVertex(g.Vertices()[0].ID)

	assert.Equal(t, before, m.Current())
}

func TestRebuildSkipsBadEdges(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	snap := Snapshot{
		VerticesCoords: [][2]float64{{0, 0}, {1, 0}, {1, 1}},
		EdgesVertices:  [][2]int{{0, 1}, {1, 7}, {-1, 0}, {2, 2}, {1, 0}, {1, 2}},
	}
	g := snap.Rebuild(logger)

	require.NoError(t, g.CheckInvariants())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Contains(t, buf.String(), "Invalid vertex indices in edge")
	assert.Contains(t, buf.String(), "Skipping edge")
}

func TestSaveStateLogsUnlessQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	quiet := NewManager(WithLogger(logger))
	quiet.SaveState(triangle(), "triangle")
	assert.Empty(t, buf.String())

	loud := NewManager(WithLogger(logger), WithQuiet(false))
	loud.SaveState(triangle(), "triangle")
	assert.Contains(t, buf.String(), "History updated")
	assert.Contains(t, buf.String(), "reason=triangle")
}
