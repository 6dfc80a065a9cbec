package history

import (
	"log/slog"

	"github.com/DrSkyle/foldcut/pkg/graph"
)

// Snapshot is the canonical, identity-free form of a graph: vertex i is
// VerticesCoords[i], edge k joins EdgesVertices[k][0] and EdgesVertices[k][1].
type Snapshot struct {
	VerticesCoords [][2]float64 `json:"vertices_coords" yaml:"vertices_coords"`
	EdgesVertices  [][2]int     `json:"edges_vertices" yaml:"edges_vertices"`
}

// Empty returns the snapshot of the empty graph.
func Empty() Snapshot {
	return Snapshot{
		VerticesCoords: [][2]float64{},
		EdgesVertices:  [][2]int{},
	}
}

// Capture canonicalizes g. Vertex order is the live iteration order and
// edges become index pairs into it. An edge whose endpoint cannot be located
// is skipped with a warning.
func Capture(g *graph.Graph, logger *slog.Logger) Snapshot {
	if logger == nil {
		logger = slog.Default()
	}

	vertices := g.Vertices()
	snap := Snapshot{
		VerticesCoords: make([][2]float64, 0, len(vertices)),
		EdgesVertices:  make([][2]int, 0, g.EdgeCount()),
	}

	index := make(map[graph.VertexID]int, len(vertices))
	for i, v := range vertices {
		index[v.ID] = i
		snap.VerticesCoords = append(snap.VerticesCoords, [2]float64{v.X, v.Y})
	}

	for _, e := range g.Edges() {
		i, ok1 := index[e.V1]
		j, ok2 := index[e.V2]
		if !ok1 || !ok2 {
			logger.Warn("Edge references a vertex that is not in the vertex collection",
				"edge", e.ID, "start_found", ok1, "end_found", ok2)
			continue
		}
		snap.EdgesVertices = append(snap.EdgesVertices, [2]int{i, j})
	}
	return snap
}

// Rebuild reconstructs a live graph with adjacency derived from scratch.
// Edge entries with out-of-range indices, self loops or repeats are skipped
// with a warning.
func (s Snapshot) Rebuild(logger *slog.Logger) *graph.Graph {
	if logger == nil {
		logger = slog.Default()
	}

	g := graph.New()
	ids := make([]graph.VertexID, len(s.VerticesCoords))
	for i, c := range s.VerticesCoords {
		ids[i] = g.AddVertex(c[0], c[1])
	}

	for k, pair := range s.EdgesVertices {
		i, j := pair[0], pair[1]
		if i < 0 || i >= len(ids) || j < 0 || j >= len(ids) {
			logger.Warn("Invalid vertex indices in edge", "edge_index", k, "edge", pair)
			continue
		}
		if _, err := g.AddEdge(ids[i], ids[j]); err != nil {
			logger.Warn("Skipping edge", "edge_index", k, "edge", pair, "error", err)
		}
	}
	return g
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		VerticesCoords: make([][2]float64, len(s.VerticesCoords)),
		EdgesVertices:  make([][2]int, len(s.EdgesVertices)),
	}
	copy(c.VerticesCoords, s.VerticesCoords)
	copy(c.EdgesVertices, s.EdgesVertices)
	return c
}
