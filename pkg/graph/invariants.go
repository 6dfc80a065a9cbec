package graph

import "fmt"

// CheckInvariants verifies that every edge references live vertices and that
// adjacency is symmetric and consistent with the edge collection.
func (g *Graph) CheckInvariants() error {
	if len(g.vertices) != len(g.vertexByID) {
		return fmt.Errorf("vertex index out of sync: %d listed, %d indexed", len(g.vertices), len(g.vertexByID))
	}
	if len(g.edges) != len(g.edgeByID) {
		return fmt.Errorf("edge index out of sync: %d listed, %d indexed", len(g.edges), len(g.edgeByID))
	}

	wantDegree := make(map[VertexID]int, len(g.vertices))
	var prev EdgeID
	for _, e := range g.edges {
		if e.ID <= prev {
			return fmt.Errorf("edge %d out of order after %d", e.ID, prev)
		}
		prev = e.ID

		if e.V1 == e.V2 {
			return fmt.Errorf("edge %d is a self loop", e.ID)
		}
		v1, ok1 := g.vertexByID[e.V1]
		v2, ok2 := g.vertexByID[e.V2]
		if !ok1 || !ok2 {
			return fmt.Errorf("edge %d references a missing vertex", e.ID)
		}
		if !contains(v1.incident, e.ID) || !contains(v2.incident, e.ID) {
			return fmt.Errorf("edge %d missing from endpoint incidence", e.ID)
		}
		if !v1.IsNeighbor(e.V2) || !v2.IsNeighbor(e.V1) {
			return fmt.Errorf("edge %d missing from endpoint neighbors", e.ID)
		}
		wantDegree[e.V1]++
		wantDegree[e.V2]++
	}

	for _, v := range g.vertices {
		if len(v.incident) != wantDegree[v.ID] || len(v.neighbors) != wantDegree[v.ID] {
			return fmt.Errorf("vertex %d adjacency has %d edges, %d neighbors, want %d",
				v.ID, len(v.incident), len(v.neighbors), wantDegree[v.ID])
		}
	}
	return nil
}

func contains(ids []EdgeID, id EdgeID) bool {
	for _, cur := range ids {
		if cur == id {
			return true
		}
	}
	return false
}
