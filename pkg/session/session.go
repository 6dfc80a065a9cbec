// Package session is the editing caller: it owns the working graph, the
// error state and the history, applies edits, and runs the post-edit hook
// that keeps the other two in step with the graph.
package session

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/DrSkyle/foldcut/pkg/geom"
	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/history"
	"github.com/DrSkyle/foldcut/pkg/input"
	"github.com/DrSkyle/foldcut/pkg/validate"
)

// Config holds the editor geometry.
type Config struct {
	VertexRadius float64
	EdgeWidth    float64
	PickRadius   float64 // how close a press must land to hit a vertex
	QuietHistory bool
}

// DefaultConfig returns the editor defaults for a unit paper.
func DefaultConfig() Config {
	return Config{
		VertexRadius: 0.005,
		EdgeWidth:    0.005,
		PickRadius:   0.02,
		QuietHistory: true,
	}
}

// Option defines a functional configuration override.
type Option func(*Session)

// WithConfig replaces the editor geometry.
func WithConfig(cfg Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithLogger sets the logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLinter attaches policy rules to the error state.
func WithLinter(l validate.Linter) Option {
	return func(s *Session) { s.linter = l }
}

// WithContext sets the parent context for commit spans.
func WithContext(ctx context.Context) Option {
	return func(s *Session) { s.ctx = ctx }
}

type dragState struct {
	vertex           graph.VertexID
	offsetX, offsetY float64
	moved            bool
}

// Session is not safe for concurrent use.
type Session struct {
	cfg     Config
	logger  *slog.Logger
	linter  validate.Linter
	ctx     context.Context
	tracer  trace.Tracer
	commits metric.Int64Counter

	graph   *graph.Graph
	errors  *validate.ErrorState
	history *history.Manager
	bus     *input.Bus

	tool          Tool
	pointer       geom.Point
	pending       graph.VertexID
	releaseCancel func()
	drag          *dragState
	releaseDrag   func()
}

// New starts a session on an empty graph.
func New(opts ...Option) *Session {
	s := &Session{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
		ctx:    context.Background(),
		tracer: otel.Tracer("foldcut/session"),
		graph:  graph.New(),
		bus:    input.NewBus(),
		tool:   ToolAddVertex,
	}
	for _, opt := range opts {
		opt(s)
	}

	commits, err := otel.Meter("foldcut/session").Int64Counter("foldcut.session.commits",
		metric.WithDescription("Edits committed to history"))
	if err != nil {
		s.logger.Warn("Commit counter unavailable", "error", err)
		commits = noop.Int64Counter{}
	}
	s.commits = commits

	s.errors = validate.NewErrorState(s.linter)
	s.errors.Refresh(s.graph)
	s.history = history.NewManager(
		history.WithLogger(s.logger),
		history.WithQuiet(s.cfg.QuietHistory),
	)
	return s
}

// Graph returns the working graph.
func (s *Session) Graph() *graph.Graph { return s.graph }

// Errors returns the validation state of the working graph.
func (s *Session) Errors() *validate.ErrorState { return s.errors }

// History returns the undo/redo list.
func (s *Session) History() *history.Manager { return s.history }

// Bus returns the input bus that global signals are dispatched on.
func (s *Session) Bus() *input.Bus { return s.bus }

// Config returns the editor geometry.
func (s *Session) Config() Config { return s.cfg }

// Pointer returns the last known pointer position.
func (s *Session) Pointer() geom.Point { return s.pointer }

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// afterEdit is the post-mutation hook. added holds edges that were created
// or whose geometry changed; removed holds edges that no longer exist.
func (s *Session) afterEdit(reason string, added, removed []graph.EdgeID) {
	_, span := s.tracer.Start(s.ctx, "session.commit", trace.WithAttributes(
		attribute.String("reason", reason),
		attribute.Int("edges.added", len(added)),
		attribute.Int("edges.removed", len(removed)),
	))
	defer span.End()

	s.errors.ForgetEdges(s.graph, removed...)
	s.errors.RefreshEdges(s.graph, added...)
	s.history.SaveState(s.graph, reason)
	s.commits.Add(s.ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))

	span.SetAttributes(attribute.Int("errors", s.errors.ErrorCount()))
	s.logger.Debug("Edit committed",
		"reason", reason,
		"vertices", s.graph.VertexCount(),
		"edges", s.graph.EdgeCount(),
		"errors", s.errors.ErrorCount(),
	)
}

// resetModal drops any pending edge or drag without committing.
func (s *Session) resetModal() {
	s.CancelPending()
	s.endDrag(false)
}

// ReplaceGraph swaps in g wholesale and records it as one undoable step.
func (s *Session) ReplaceGraph(g *graph.Graph, reason string) {
	s.resetModal()
	s.graph = g
	s.errors.Refresh(g)
	s.history.SaveState(g, reason)
	s.logger.Info("Graph replaced", "reason", reason, "vertices", g.VertexCount(), "edges", g.EdgeCount())
}

// Undo restores the previous state. It reports false at the start of history.
func (s *Session) Undo() bool {
	return s.restore("session.undo", s.history.Undo)
}

// Redo re-applies the next state. It reports false at the end of history.
func (s *Session) Redo() bool {
	return s.restore("session.redo", s.history.Redo)
}

func (s *Session) restore(name string, step func() (*graph.Graph, bool)) bool {
	_, span := s.tracer.Start(s.ctx, name)
	defer span.End()

	s.resetModal()
	g, ok := step()
	span.SetAttributes(attribute.Bool("applied", ok))
	if !ok {
		return false
	}
	s.graph = g
	s.errors.Refresh(g)
	return true
}

// AddVertex places a vertex and commits.
func (s *Session) AddVertex(x, y float64) graph.VertexID {
	id := s.graph.AddVertex(x, y)
	s.afterEdit("add vertex", nil, nil)
	return id
}

// AddEdge connects a and b and commits. Rejected edges change nothing.
func (s *Session) AddEdge(a, b graph.VertexID) (graph.EdgeID, error) {
	e, err := s.graph.AddEdge(a, b)
	if err != nil {
		return graph.InvalidID, err
	}
	s.afterEdit("add edge", []graph.EdgeID{e}, nil)
	return e, nil
}

// VertexAt returns the vertex nearest (x, y) within the pick radius.
func (s *Session) VertexAt(x, y float64) (graph.VertexID, bool) {
	p := geom.Point{X: x, Y: y}
	best := graph.VertexID(graph.InvalidID)
	bestDist := s.cfg.PickRadius
	for _, v := range s.graph.Vertices() {
		if d := v.Point().Dist(p); d <= bestDist {
			best, bestDist = v.ID, d
		}
	}
	return best, best != graph.InvalidID
}
