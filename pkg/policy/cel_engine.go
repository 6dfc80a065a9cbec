// Package policy evaluates user-defined lint rules against a crease pattern.
// Rules are CEL expressions; a rule that evaluates to true produces a Finding.
// Findings are advisory and never block an edit.
package policy

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"

	"github.com/DrSkyle/foldcut/pkg/graph"
)

// Target selects what a rule is evaluated against.
type Target string

const (
	TargetVertex Target = "vertex"
	TargetEdge   Target = "edge"
)

var ErrUnknownTarget = errors.New("unknown rule target")

// Rule is a user-defined lint rule (e.g. from ~/.foldcut.yaml).
type Rule struct {
	ID        string `mapstructure:"id" json:"id" yaml:"id"`
	Target    Target `mapstructure:"target" json:"target" yaml:"target"`
	Condition string `mapstructure:"condition" json:"condition" yaml:"condition"` // CEL: "degree > 2"
	Message   string `mapstructure:"message" json:"message" yaml:"message"`
}

// Finding is one rule match. Exactly one of Vertex or Edge is set.
type Finding struct {
	RuleID  string         `json:"rule"`
	Message string         `json:"message"`
	Vertex  graph.VertexID `json:"vertex,omitempty"`
	Edge    graph.EdgeID   `json:"edge,omitempty"`
}

type compiledRule struct {
	Rule
	prg cel.Program
}

// Engine manages the compilation and execution of lint rules.
type Engine struct {
	vertexEnv *cel.Env
	edgeEnv   *cel.Env
	rules     []compiledRule
	logger    *slog.Logger
}

// NewEngine initializes the CEL environments. Vertex rules see x, y and
// degree; edge rules see length and the endpoint coordinates.
func NewEngine(logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	vertexEnv, err := cel.NewEnv(
		cel.Variable("x", cel.DoubleType),
		cel.Variable("y", cel.DoubleType),
		cel.Variable("degree", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex CEL env: %w", err)
	}

	edgeEnv, err := cel.NewEnv(
		cel.Variable("length", cel.DoubleType),
		cel.Variable("x1", cel.DoubleType),
		cel.Variable("y1", cel.DoubleType),
		cel.Variable("x2", cel.DoubleType),
		cel.Variable("y2", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create edge CEL env: %w", err)
	}

	return &Engine{vertexEnv: vertexEnv, edgeEnv: edgeEnv, logger: logger}, nil
}

// DefaultRules returns the rules applied when the config names none.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:        "off-paper",
			Target:    TargetVertex,
			Condition: "x < 0.0 || x > 1.0 || y < 0.0 || y > 1.0",
			Message:   "vertex lies outside the paper",
		},
		{
			ID:        "saturated",
			Target:    TargetVertex,
			Condition: "degree > 2",
			Message:   "vertex has more than two edges",
		},
		{
			ID:        "short-edge",
			Target:    TargetEdge,
			Condition: "length < 0.001",
			Message:   "edge is too short to fold",
		},
	}
}

// Compile compiles rules into executable programs, replacing any previous set.
func (e *Engine) Compile(rules []Rule) error {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		var env *cel.Env
		switch r.Target {
		case TargetVertex:
			env = e.vertexEnv
		case TargetEdge:
			env = e.edgeEnv
		default:
			return fmt.Errorf("rule %s: %w %q", r.ID, ErrUnknownTarget, r.Target)
		}

		ast, issues := env.Compile(r.Condition)
		if issues != nil && issues.Err() != nil {
			return fmt.Errorf("rule %s compilation error: %w", r.ID, issues.Err())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return fmt.Errorf("rule %s program creation error: %w", r.ID, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, prg: prg})
	}

	e.rules = compiled
	return nil
}

// Rules returns the compiled rule definitions in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Rule
	}
	return out
}

// Lint evaluates every rule against every vertex and edge of g.
func (e *Engine) Lint(g *graph.Graph) []Finding {
	var findings []Finding

	for _, v := range g.Vertices() {
		vars := map[string]any{
			"x":      v.X,
			"y":      v.Y,
			"degree": int64(v.Degree()),
		}
		for _, r := range e.rules {
			if r.Target == TargetVertex && e.match(r, vars) {
				findings = append(findings, Finding{RuleID: r.ID, Message: r.Message, Vertex: v.ID})
			}
		}
	}

	for _, ed := range g.Edges() {
		seg, ok := g.Segment(ed.ID)
		if !ok {
			continue
		}
		vars := map[string]any{
			"length": seg.Length(),
			"x1":     seg.A.X,
			"y1":     seg.A.Y,
			"x2":     seg.B.X,
			"y2":     seg.B.Y,
		}
		for _, r := range e.rules {
			if r.Target == TargetEdge && e.match(r, vars) {
				findings = append(findings, Finding{RuleID: r.ID, Message: r.Message, Edge: ed.ID})
			}
		}
	}

	return findings
}

func (e *Engine) match(r compiledRule, vars map[string]any) bool {
	out, _, err := r.prg.Eval(vars)
	if err != nil {
		e.logger.Error("Rule evaluation failed", "rule_id", r.ID, "error", err)
		return false
	}

	// Rules must return a boolean (true = finding).
	match, ok := out.Value().(bool)
	if !ok {
		e.logger.Warn("Rule did not return a boolean", "rule_id", r.ID)
		return false
	}
	return match
}
