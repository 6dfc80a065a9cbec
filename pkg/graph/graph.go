// Package graph is the crease pattern model: an arena of vertices and edges
// addressed by stable IDs. Adjacency is stored as IDs, never as pointers
// between vertices and edges, so removal and serialization never have to
// break reference cycles.
package graph

import (
	"errors"
	"fmt"

	"github.com/DrSkyle/foldcut/pkg/geom"
)

// VertexID identifies a vertex within one Graph. Zero is never allocated.
type VertexID uint32

// EdgeID identifies an edge within one Graph. Zero is never allocated.
// IDs grow with insertion, so ID order is edge collection order.
type EdgeID uint32

// InvalidID is the zero sentinel for both ID kinds.
const InvalidID = 0

var (
	ErrSelfLoop      = errors.New("edge endpoints must be distinct")
	ErrDuplicateEdge = errors.New("vertices already share an edge")
	ErrUnknownVertex = errors.New("unknown vertex")
)

// Vertex is a point of the pattern plus its incrementally maintained adjacency.
type Vertex struct {
	ID       VertexID
	X        float64
	Y        float64
	Selected bool

	incident  []EdgeID
	neighbors []VertexID
}

// Point returns the vertex location.
func (v *Vertex) Point() geom.Point {
	return geom.Point{X: v.X, Y: v.Y}
}

// Degree is the number of incident edges.
func (v *Vertex) Degree() int {
	return len(v.incident)
}

// IncidentEdges returns a copy of the incident edge IDs in insertion order.
func (v *Vertex) IncidentEdges() []EdgeID {
	out := make([]EdgeID, len(v.incident))
	copy(out, v.incident)
	return out
}

// Neighbors returns a copy of the adjacent vertex IDs in insertion order.
func (v *Vertex) Neighbors() []VertexID {
	out := make([]VertexID, len(v.neighbors))
	copy(out, v.neighbors)
	return out
}

// IsNeighbor reports whether v shares an edge with u.
func (v *Vertex) IsNeighbor(u VertexID) bool {
	for _, n := range v.neighbors {
		if n == u {
			return true
		}
	}
	return false
}

// Edge is an unordered pair of distinct vertices.
type Edge struct {
	ID EdgeID
	V1 VertexID
	V2 VertexID
}

// Has reports whether v is one of the endpoints.
func (e *Edge) Has(v VertexID) bool {
	return e.V1 == v || e.V2 == v
}

// Other returns the endpoint opposite v.
func (e *Edge) Other(v VertexID) VertexID {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

// Graph owns the vertex and edge collections. It is not safe for concurrent use.
type Graph struct {
	vertices []*Vertex
	edges    []*Edge

	vertexByID map[VertexID]*Vertex
	edgeByID   map[EdgeID]*Edge

	nextVertex VertexID
	nextEdge   EdgeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		vertexByID: make(map[VertexID]*Vertex),
		edgeByID:   make(map[EdgeID]*Edge),
		nextVertex: 1,
		nextEdge:   1,
	}
}

// AddVertex appends a vertex with empty adjacency. It always succeeds.
func (g *Graph) AddVertex(x, y float64) VertexID {
	id := g.nextVertex
	g.nextVertex++

	v := &Vertex{ID: id, X: x, Y: y}
	g.vertices = append(g.vertices, v)
	g.vertexByID[id] = v
	return id
}

// RemoveVertex deletes v together with every incident edge and returns the
// removed edge IDs. Removing an unknown vertex is a no-op.
func (g *Graph) RemoveVertex(id VertexID) []EdgeID {
	v, ok := g.vertexByID[id]
	if !ok {
		return nil
	}

	removed := v.IncidentEdges()
	for _, e := range removed {
		g.RemoveEdge(e)
	}

	for i, cur := range g.vertices {
		if cur.ID == id {
			g.vertices = append(g.vertices[:i], g.vertices[i+1:]...)
			break
		}
	}
	delete(g.vertexByID, id)
	return removed
}

// AddEdge connects a and b. Self loops and duplicate edges are rejected.
func (g *Graph) AddEdge(a, b VertexID) (EdgeID, error) {
	va, ok := g.vertexByID[a]
	if !ok {
		return InvalidID, fmt.Errorf("%w: %d", ErrUnknownVertex, a)
	}
	vb, ok := g.vertexByID[b]
	if !ok {
		return InvalidID, fmt.Errorf("%w: %d", ErrUnknownVertex, b)
	}
	if a == b {
		return InvalidID, ErrSelfLoop
	}
	if va.IsNeighbor(b) {
		return InvalidID, ErrDuplicateEdge
	}

	id := g.nextEdge
	g.nextEdge++

	e := &Edge{ID: id, V1: a, V2: b}
	g.edges = append(g.edges, e)
	g.edgeByID[id] = e

	va.incident = append(va.incident, id)
	vb.incident = append(vb.incident, id)
	va.neighbors = append(va.neighbors, b)
	vb.neighbors = append(vb.neighbors, a)
	return id, nil
}

// RemoveEdge deletes e from the collection and from both endpoints.
// It reports whether the edge existed.
func (g *Graph) RemoveEdge(id EdgeID) bool {
	e, ok := g.edgeByID[id]
	if !ok {
		return false
	}

	if v1, ok := g.vertexByID[e.V1]; ok {
		v1.incident = dropEdge(v1.incident, id)
		v1.neighbors = dropVertex(v1.neighbors, e.V2)
	}
	if v2, ok := g.vertexByID[e.V2]; ok {
		v2.incident = dropEdge(v2.incident, id)
		v2.neighbors = dropVertex(v2.neighbors, e.V1)
	}

	for i, cur := range g.edges {
		if cur.ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
	delete(g.edgeByID, id)
	return true
}

// MoveVertex updates coordinates in place. Topology is untouched; callers
// re-run intersection checks for the incident edges.
func (g *Graph) MoveVertex(id VertexID, x, y float64) bool {
	v, ok := g.vertexByID[id]
	if !ok {
		return false
	}
	v.X, v.Y = x, y
	return true
}

// SetSelected toggles the view-only selection flag.
func (g *Graph) SetSelected(id VertexID, selected bool) {
	if v, ok := g.vertexByID[id]; ok {
		v.Selected = selected
	}
}

// Vertex returns the vertex for id, or nil.
func (g *Graph) Vertex(id VertexID) *Vertex {
	return g.vertexByID[id]
}

// Edge returns the edge for id, or nil.
func (g *Graph) Edge(id EdgeID) *Edge {
	return g.edgeByID[id]
}

// Vertices returns the vertices in iteration (insertion) order.
// The slice is a copy; the pointed-to vertices are live.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Edges returns the edges in collection order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the degree of id, or -1 for an unknown vertex.
func (g *Graph) Degree(id VertexID) int {
	v, ok := g.vertexByID[id]
	if !ok {
		return -1
	}
	return v.Degree()
}

// Segment returns the geometry of edge id.
func (g *Graph) Segment(id EdgeID) (geom.Segment, bool) {
	e, ok := g.edgeByID[id]
	if !ok {
		return geom.Segment{}, false
	}
	v1, ok1 := g.vertexByID[e.V1]
	v2, ok2 := g.vertexByID[e.V2]
	if !ok1 || !ok2 {
		return geom.Segment{}, false
	}
	return geom.Segment{A: v1.Point(), B: v2.Point()}, true
}

// SharesEndpoint reports whether the two edges meet at a modeled vertex.
func (g *Graph) SharesEndpoint(a, b EdgeID) bool {
	ea, eb := g.edgeByID[a], g.edgeByID[b]
	if ea == nil || eb == nil {
		return false
	}
	return eb.Has(ea.V1) || eb.Has(ea.V2)
}

// Clone returns a deep copy with identical IDs.
func (g *Graph) Clone() *Graph {
	c := New()
	c.nextVertex = g.nextVertex
	c.nextEdge = g.nextEdge

	for _, v := range g.vertices {
		cv := &Vertex{
			ID:        v.ID,
			X:         v.X,
			Y:         v.Y,
			Selected:  v.Selected,
			incident:  v.IncidentEdges(),
			neighbors: v.Neighbors(),
		}
		c.vertices = append(c.vertices, cv)
		c.vertexByID[cv.ID] = cv
	}
	for _, e := range g.edges {
		ce := *e
		c.edges = append(c.edges, &ce)
		c.edgeByID[ce.ID] = &ce
	}
	return c
}

// Stats returns a one-line summary for logs.
func (g *Graph) Stats() string {
	return fmt.Sprintf("Vertices: %d | Edges: %d", len(g.vertices), len(g.edges))
}

func dropEdge(ids []EdgeID, id EdgeID) []EdgeID {
	out := ids[:0]
	for _, cur := range ids {
		if cur != id {
			out = append(out, cur)
		}
	}
	return out
}

func dropVertex(ids []VertexID, id VertexID) []VertexID {
	out := ids[:0]
	for _, cur := range ids {
		if cur != id {
			out = append(out, cur)
		}
	}
	return out
}
