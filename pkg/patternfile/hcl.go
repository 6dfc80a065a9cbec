package patternfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclPatternFile is the top-level structure of an .hcl pattern.
//
//	vertex "a" {
//	  x = paper.min
//	  y = 0.25
//	}
//	edge {
//	  from = "a"
//	  to   = "b"
//	}
type hclPatternFile struct {
	Vertices []*hclVertex `hcl:"vertex,block"`
	Edges    []*hclEdge   `hcl:"edge,block"`
}

type hclVertex struct {
	Name string  `hcl:"name,label"`
	X    float64 `hcl:"x"`
	Y    float64 `hcl:"y"`
}

type hclEdge struct {
	From hcl.Expression `hcl:"from"`
	To   hcl.Expression `hcl:"to"`
}

// evalContext exposes the paper bounds to pattern expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"paper": cty.ObjectVal(map[string]cty.Value{
				"min": cty.NumberIntVal(0),
				"mid": cty.NumberFloatVal(0.5),
				"max": cty.NumberIntVal(1),
			}),
		},
	}
}

func decodeHCL(filename string, data []byte) (any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL pattern %s: %w", filename, diags)
	}

	ctx := evalContext()
	var parsed hclPatternFile
	if diags := gohcl.DecodeBody(file.Body, ctx, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL pattern %s: %w", filename, diags)
	}

	index := make(map[string]int, len(parsed.Vertices))
	coords := make([]any, 0, len(parsed.Vertices))
	for i, v := range parsed.Vertices {
		if _, dup := index[v.Name]; dup {
			return nil, fmt.Errorf("HCL pattern %s: duplicate vertex %q", filename, v.Name)
		}
		index[v.Name] = i
		coords = append(coords, []any{v.X, v.Y})
	}

	edges := make([]any, 0, len(parsed.Edges))
	for _, e := range parsed.Edges {
		from, err := resolveVertex(e.From, ctx, index)
		if err != nil {
			return nil, fmt.Errorf("HCL pattern %s: %w", filename, err)
		}
		to, err := resolveVertex(e.To, ctx, index)
		if err != nil {
			return nil, fmt.Errorf("HCL pattern %s: %w", filename, err)
		}
		edges = append(edges, []any{from, to})
	}

	return map[string]any{
		"vertices_coords": coords,
		"edges_vertices":  edges,
	}, nil
}

func resolveVertex(expr hcl.Expression, ctx *hcl.EvalContext, index map[string]int) (int, error) {
	var name string
	if diags := gohcl.DecodeExpression(expr, ctx, &name); diags.HasErrors() {
		return 0, diags
	}
	i, ok := index[name]
	if !ok {
		r := expr.Range()
		return 0, fmt.Errorf("%s: unknown vertex %q", r.String(), name)
	}
	return i, nil
}
