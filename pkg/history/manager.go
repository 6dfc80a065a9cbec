// Package history keeps a linear undo/redo list of canonical snapshots.
// It never aliases the working graph: every undo or redo hands back a
// freshly rebuilt graph.
package history

import (
	"log/slog"

	"github.com/DrSkyle/foldcut/pkg/graph"
)

// Entry describes one stored state.
type Entry struct {
	Index    int
	Reason   string
	Vertices int
	Edges    int
}

// Manager holds the snapshots and the current index.
// Invariant: 0 <= current < len(states), and states[0] is the empty graph.
type Manager struct {
	states  []Snapshot
	reasons []string
	current int

	logger *slog.Logger
	quiet  bool
}

// Option defines a functional configuration override.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithQuiet suppresses the per-commit log line.
func WithQuiet(quiet bool) Option {
	return func(m *Manager) {
		m.quiet = quiet
	}
}

// NewManager starts a history holding only the empty graph.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		states:  []Snapshot{Empty()},
		reasons: []string{"initial"},
		logger:  slog.Default(),
		quiet:   true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SaveState discards the redo branch and appends the canonical form of g.
// Call it once per committed edit, not per drag frame.
func (m *Manager) SaveState(g *graph.Graph, reason string) {
	m.states = m.states[:m.current+1]
	m.reasons = m.reasons[:m.current+1]

	snap := Capture(g, m.logger)
	m.states = append(m.states, snap)
	m.reasons = append(m.reasons, reason)
	m.current++

	if reason == "" || m.quiet {
		return
	}
	m.logger.Info("History updated",
		"index", m.current,
		"vertices", len(snap.VerticesCoords),
		"edges", len(snap.EdgesVertices),
		"reason", reason,
	)
}

// CanUndo reports whether an earlier state exists.
func (m *Manager) CanUndo() bool {
	return m.current > 0
}

// CanRedo reports whether a later state exists.
func (m *Manager) CanRedo() bool {
	return m.current < len(m.states)-1
}

// Undo steps back and returns the rebuilt graph. ok is false at the start
// of history, in which case nothing changes.
func (m *Manager) Undo() (*graph.Graph, bool) {
	if !m.CanUndo() {
		return nil, false
	}
	m.current--
	return m.states[m.current].Rebuild(m.logger), true
}

// Redo steps forward and returns the rebuilt graph. ok is false at the end
// of history.
func (m *Manager) Redo() (*graph.Graph, bool) {
	if !m.CanRedo() {
		return nil, false
	}
	m.current++
	return m.states[m.current].Rebuild(m.logger), true
}

// Len returns the number of stored states, including the initial one.
func (m *Manager) Len() int {
	return len(m.states)
}

// Index returns the current position.
func (m *Manager) Index() int {
	return m.current
}

// Current returns a copy of the current snapshot.
func (m *Manager) Current() Snapshot {
	return m.states[m.current].Clone()
}

// Entries lists every stored state, oldest first.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.states))
	for i, s := range m.states {
		out[i] = Entry{
			Index:    i,
			Reason:   m.reasons[i],
			Vertices: len(s.VerticesCoords),
			Edges:    len(s.EdgesVertices),
		}
	}
	return out
}
