package fnc

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrSkyle/foldcut/pkg/graph"
)

type holder struct {
	g       *graph.Graph
	reasons []string
}

func (h *holder) Graph() *graph.Graph { return h.g }

func (h *holder) ReplaceGraph(g *graph.Graph, reason string) {
	h.g = g
	h.reasons = append(h.reasons, reason)
}

func newHolder() *holder {
	return &holder{g: graph.New()}
}

func TestGetStateCanonical(t *testing.T) {
	h := newHolder()
	a := h.g.AddVertex(0, 0)
	b := h.g.AddVertex(1, 1)
	c := h.g.AddVertex(1, 0)
	_, _ = h.g.AddEdge(c, a)
	_, _ = h.g.AddEdge(a, b)

	st := NewPort(h, nil).GetState()
	assert.Equal(t, [][2]float64{{0, 0}, {1, 1}, {1, 0}}, st.VerticesCoords)
	assert.Equal(t, [][2]int{{2, 0}, {0, 1}}, st.EdgesVertices)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 20; round++ {
		h := newHolder()
		for i := 0; i < 8; i++ {
			h.g.AddVertex(rng.Float64(), rng.Float64())
		}
		vs := h.g.Vertices()
		for i := 0; i < 10; i++ {
			_, _ = h.g.AddEdge(vs[rng.Intn(len(vs))].ID, vs[rng.Intn(len(vs))].ID)
		}
		// Removals leave gaps in the ID space that canonical indices hide.
		h.g.RemoveVertex(vs[rng.Intn(len(vs))].ID)

		p := NewPort(h, nil)
		before := p.GetState()
		require.NoError(t, p.SetState(before))
		assert.Equal(t, before, p.GetState(), "round %d", round)
		require.NoError(t, h.g.CheckInvariants())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	h := newHolder()
	a := h.g.AddVertex(0.25, 0.5)
	b := h.g.AddVertex(0.75, 0.5)
	_, _ = h.g.AddEdge(a, b)

	p := NewPort(h, nil)
	data, err := p.GetStateJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"vertices_coords":[[0.25,0.5],[0.75,0.5]],"edges_vertices":[[0,1]]}`, string(data))

	other := newHolder()
	require.NoError(t, NewPort(other, nil).SetStateJSON(data))
	assert.Equal(t, 1, other.g.Vertex(other.g.Vertices()[0].ID).Degree())
	assert.Equal(t, []string{"set state"}, other.reasons)
}

func TestSetStateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		index int
	}{
		{"not an object", `[1, 2]`, ErrInvalidShape, -1},
		{"vertices not a list", `{"vertices_coords": 3, "edges_vertices": []}`, ErrInvalidShape, -1},
		{"edges missing", `{"vertices_coords": []}`, ErrInvalidShape, -1},
		{"short vertex", `{"vertices_coords": [[0,0],[1]], "edges_vertices": []}`, ErrInvalidVertex, 1},
		{"string coordinate", `{"vertices_coords": [["a",0]], "edges_vertices": []}`, ErrInvalidVertex, 0},
		{"vertex before edge", `{"vertices_coords": [[0,0],null], "edges_vertices": [5]}`, ErrInvalidVertex, 1},
		{"edge not a pair", `{"vertices_coords": [[0,0],[1,1]], "edges_vertices": [[0,1],[0]]}`, ErrInvalidEdge, 1},
		{"fractional index", `{"vertices_coords": [[0,0],[1,1]], "edges_vertices": [[0,0.5]]}`, ErrInvalidEdge, 0},
		{"out of bounds", `{"vertices_coords": [[0,0],[1,1]], "edges_vertices": [[0,1],[1,2]]}`, ErrOutOfBounds, 1},
		{"negative index", `{"vertices_coords": [[0,0],[1,1]], "edges_vertices": [[-1,1]]}`, ErrOutOfBounds, 0},
		{"self loop", `{"vertices_coords": [[0,0],[1,1]], "edges_vertices": [[1,1]]}`, ErrInvalidEdge, 0},
		{"duplicate", `{"vertices_coords": [[0,0],[1,1]], "edges_vertices": [[0,1],[1,0]]}`, ErrInvalidEdge, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHolder()
			h.g.AddVertex(0.5, 0.5)
			before := NewPort(h, nil).GetState()

			err := NewPort(h, nil).SetStateJSON([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var se *StateError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.index, se.Index)

			// Nothing is applied on failure.
			assert.Equal(t, before, NewPort(h, nil).GetState())
			assert.Empty(t, h.reasons)
		})
	}
}

func TestSetStateRejectsNonFinite(t *testing.T) {
	h := newHolder()
	err := NewPort(h, nil).SetState(map[string]any{
		"vertices_coords": []any{[]any{0.0, 0.0}, []any{math.NaN(), 1.0}},
		"edges_vertices":  []any{},
	})
	assert.ErrorIs(t, err, ErrInvalidVertex)
}

func TestSetStateAcceptsGoNumbers(t *testing.T) {
	h := newHolder()
	err := NewPort(h, nil).SetState(map[string]any{
		"vertices_coords": [][]float32{{0, 0}, {1, 0}, {0, 1}},
		"edges_vertices":  [][]int{{0, 1}, {1, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, h.g.VertexCount())
	assert.Equal(t, 2, h.g.EdgeCount())
	assert.Equal(t, 2, h.g.Degree(h.g.Vertices()[1].ID))

	// Integral floats are valid indices.
	err = NewPort(h, nil).SetState(map[string]any{
		"vertices_coords": []any{[]any{0, 0}, []any{1, 1}},
		"edges_vertices":  []any{[]any{0.0, 1.0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.g.EdgeCount())
}

func TestStateErrorMessage(t *testing.T) {
	err := indexError(ErrOutOfBounds, 3, "vertex index 9 not in [0, 2)")
	assert.Equal(t, "edge vertex index out of bounds at index 3: vertex index 9 not in [0, 2)", err.Error())

	var raw any
	require.NoError(t, json.Unmarshal([]byte(`"x"`), &raw))
	_, err = Decode(raw)
	assert.EqualError(t, err, "invalid state shape: state must be an object")
}
