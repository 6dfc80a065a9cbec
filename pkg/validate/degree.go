package validate

import "github.com/DrSkyle/foldcut/pkg/graph"

// MinDegree is the degree every vertex of a closed cut line needs.
const MinDegree = 2

// LowDegree returns, in vertex order, every vertex with fewer than two
// incident edges. Degree above two is an edit-time policy concern.
func LowDegree(g *graph.Graph) []graph.VertexID {
	var out []graph.VertexID
	for _, v := range g.Vertices() {
		if v.Degree() < MinDegree {
			out = append(out, v.ID)
		}
	}
	return out
}
