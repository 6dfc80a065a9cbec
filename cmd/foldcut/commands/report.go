package commands

import (
	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/policy"
	"github.com/DrSkyle/foldcut/pkg/validate"
)

func buildReport(path string, g *graph.Graph, es *validate.ErrorState) CheckReport {
	r := CheckReport{
		File:              path,
		Vertices:          g.VertexCount(),
		Edges:             g.EdgeCount(),
		Components:        g.Components(),
		Errors:            es.ErrorCount(),
		LowDegreeVertices: append([]graph.VertexID{}, es.LowDegreeVertices...),
		IntersectingPairs: [][2]graph.EdgeID{},
		Findings:          append([]policy.Finding{}, es.Findings...),
		Summary:           es.SummaryLines(),
	}
	for _, p := range es.IntersectingEdges.Pairs() {
		r.IntersectingPairs = append(r.IntersectingPairs, [2]graph.EdgeID{p.A, p.B})
	}
	return r
}
