package validate

import (
	"fmt"
	"strings"

	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/policy"
)

// Linter produces advisory findings; *policy.Engine implements it.
type Linter interface {
	Lint(g *graph.Graph) []policy.Finding
}

// ErrorState aggregates the validator outputs for display.
type ErrorState struct {
	LowDegreeVertices []graph.VertexID
	IntersectingEdges *PairSet
	Findings          []policy.Finding

	linter Linter
}

// NewErrorState returns an empty state. linter may be nil.
func NewErrorState(linter Linter) *ErrorState {
	return &ErrorState{
		IntersectingEdges: NewPairSet(),
		linter:            linter,
	}
}

// Refresh recomputes everything from scratch.
func (s *ErrorState) Refresh(g *graph.Graph) {
	s.IntersectingEdges = FullRebuild(g)
	s.refreshVertices(g)
}

// RefreshEdges narrows the intersection pass to the given edges, then
// recomputes degree and policy findings.
func (s *ErrorState) RefreshEdges(g *graph.Graph, edges ...graph.EdgeID) {
	for _, e := range edges {
		s.IntersectingEdges.UpdateEdge(g, e)
	}
	s.refreshVertices(g)
}

// ForgetEdges drops the recorded crossings of removed edges, then recomputes
// degree and policy findings.
func (s *ErrorState) ForgetEdges(g *graph.Graph, edges ...graph.EdgeID) {
	for _, e := range edges {
		s.IntersectingEdges.ForgetEdge(e)
	}
	s.refreshVertices(g)
}

func (s *ErrorState) refreshVertices(g *graph.Graph) {
	s.LowDegreeVertices = LowDegree(g)
	s.Findings = nil
	if s.linter != nil {
		s.Findings = s.linter.Lint(g)
	}
}

// IsLowDegree reports whether v is flagged.
func (s *ErrorState) IsLowDegree(v graph.VertexID) bool {
	for _, id := range s.LowDegreeVertices {
		if id == v {
			return true
		}
	}
	return false
}

// ErrorCount counts low-degree vertices plus crossing pairs. Policy findings
// are advisory and not counted.
func (s *ErrorState) ErrorCount() int {
	return len(s.LowDegreeVertices) + s.IntersectingEdges.Len()
}

// OK reports whether the pattern has no structural errors.
func (s *ErrorState) OK() bool {
	return s.ErrorCount() == 0
}

// SummaryLines returns the status text: a headline and one line per error class.
func (s *ErrorState) SummaryLines() []string {
	total := s.ErrorCount()
	if total == 0 {
		return []string{"No errors"}
	}

	lines := []string{fmt.Sprintf("(%d %s)", total, plural(total, "error", "errors"))}

	if n := len(s.LowDegreeVertices); n > 0 {
		lines = append(lines, fmt.Sprintf(
			"- %d %s missing edges (all vertices must have 2 adjacent edges).",
			n, plural(n, "vertex is", "vertices are")))
	}
	if n := s.IntersectingEdges.Len(); n > 0 {
		lines = append(lines, fmt.Sprintf(
			"- %d %s intersecting (no two edges can intersect).",
			n, plural(n, "pair of edges is", "pairs of edges are")))
	}
	return lines
}

// Summary joins SummaryLines with newlines.
func (s *ErrorState) Summary() string {
	return strings.Join(s.SummaryLines(), "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
