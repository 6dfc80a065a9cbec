// Package fnc is the programmatic state port of an editing session: it reads
// the working graph out in canonical form and replaces it from external
// input after validating every entry.
package fnc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"reflect"

	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/history"
)

// State is the canonical exchange shape, shared with history snapshots.
type State = history.Snapshot

// Target owns the working graph.
type Target interface {
	Graph() *graph.Graph
	ReplaceGraph(g *graph.Graph, reason string)
}

// Port reads and writes the state of a Target.
type Port struct {
	target Target
	logger *slog.Logger
}

// NewPort binds a port to target.
func NewPort(target Target, logger *slog.Logger) *Port {
	if logger == nil {
		logger = slog.Default()
	}
	return &Port{target: target, logger: logger}
}

// GetState returns the canonical form of the working graph.
func (p *Port) GetState() State {
	return history.Capture(p.target.Graph(), p.logger)
}

// SetState validates raw and, only if every entry is valid, replaces the
// working graph with one rebuilt from it. raw is either a State or the
// generic value produced by decoding JSON or YAML into any.
func (p *Port) SetState(raw any) error {
	st, err := Decode(raw)
	if err != nil {
		return err
	}
	p.target.ReplaceGraph(st.Rebuild(p.logger), "set state")
	return nil
}

// GetStateJSON encodes the current state.
func (p *Port) GetStateJSON() ([]byte, error) {
	return json.MarshalIndent(p.GetState(), "", "  ")
}

// SetStateJSON decodes data generically and applies it with SetState.
func (p *Port) SetStateJSON(data []byte) error {
	raw, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	return p.SetState(raw)
}

// DecodeJSON parses data into the generic form SetState validates. Numbers
// are kept as json.Number so integral indices stay exact.
func DecodeJSON(data []byte) (any, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return raw, nil
}

// Decode validates raw in order: shape, then every vertex, then every edge.
// Each edge is checked for shape before its indices are bounds-checked.
func Decode(raw any) (State, error) {
	switch st := raw.(type) {
	case State:
		raw = map[string]any{"vertices_coords": st.VerticesCoords, "edges_vertices": st.EdgesVertices}
	case *State:
		if st != nil {
			raw = map[string]any{"vertices_coords": st.VerticesCoords, "edges_vertices": st.EdgesVertices}
		}
	}

	obj, ok := asObject(raw)
	if !ok {
		return State{}, shapeError("state must be an object")
	}
	verts, ok := asList(obj["vertices_coords"])
	if !ok {
		return State{}, shapeError("vertices_coords must be a list")
	}
	edges, ok := asList(obj["edges_vertices"])
	if !ok {
		return State{}, shapeError("edges_vertices must be a list")
	}

	out := State{
		VerticesCoords: make([][2]float64, len(verts)),
		EdgesVertices:  make([][2]int, len(edges)),
	}

	for i, entry := range verts {
		pair, ok := asList(entry)
		if !ok || len(pair) != 2 {
			return State{}, indexError(ErrInvalidVertex, i, "must be [x, y]")
		}
		for k := range pair {
			f, ok := asFloat(pair[k])
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				return State{}, indexError(ErrInvalidVertex, i, "coordinates must be finite numbers")
			}
			out.VerticesCoords[i][k] = f
		}
	}

	seen := make(map[[2]int]bool, len(edges))
	for i, entry := range edges {
		pair, ok := asList(entry)
		if !ok || len(pair) != 2 {
			return State{}, indexError(ErrInvalidEdge, i, "must be [start, end]")
		}
		var idx [2]int
		for k := range pair {
			n, ok := asIndex(pair[k])
			if !ok {
				return State{}, indexError(ErrInvalidEdge, i, "vertex indices must be integers")
			}
			idx[k] = n
		}
		for _, n := range idx {
			if n < 0 || n >= len(verts) {
				return State{}, indexError(ErrOutOfBounds, i, fmt.Sprintf("vertex index %d not in [0, %d)", n, len(verts)))
			}
		}
		if idx[0] == idx[1] {
			return State{}, indexError(ErrInvalidEdge, i, "self loop")
		}
		key := idx
		if key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			return State{}, indexError(ErrInvalidEdge, i, "duplicate edge")
		}
		seen[key] = true
		out.EdgesVertices[i] = idx
	}
	return out, nil
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func asIndex(v any) (int, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	f, ok := asFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		// Still integral; the bounds check reports it.
		if f < 0 {
			return -1, true
		}
		return math.MaxInt32, true
	}
	return int(f), true
}
