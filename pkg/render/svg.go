// Package render draws a crease pattern as SVG in paper coordinates, with
// the error markers the editor shows: a red triangle on every vertex that is
// missing edges and a red X on every crossing.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/validate"
)

// Options controls sizes. Lengths are in paper units.
type Options struct {
	Pixels       int
	VertexRadius float64
	EdgeWidth    float64
	PaperBorder  float64
}

// DefaultOptions mirrors the editor proportions.
func DefaultOptions() Options {
	return Options{
		Pixels:       800,
		VertexRadius: 0.005,
		EdgeWidth:    0.005,
		PaperBorder:  0.01,
	}
}

type svgLine struct {
	X1, Y1, X2, Y2 float64
}

type svgPoint struct {
	X, Y float64
}

// svgData holds data for the SVG template.
type svgData struct {
	Opts      Options
	Triangles [][3]svgPoint
	Crosses   [][2]svgLine
	Edges     []svgLine
	Vertices  []svgPoint
}

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Opts.Pixels}}" height="{{.Opts.Pixels}}" viewBox="0 0 1 1">
  <rect width="1" height="1" fill="white" stroke="black" stroke-width="{{num .Opts.PaperBorder}}"/>
{{- range .Triangles}}
  <polygon points="{{range $i, $p := .}}{{if $i}} {{end}}{{num $p.X}},{{num $p.Y}}{{end}}" fill="red" opacity="0.7" stroke="none"/>
{{- end}}
{{- range .Crosses}}
  <g stroke="red" stroke-width="{{num $.Opts.EdgeWidth}}">
{{- range .}}
    <line x1="{{num .X1}}" y1="{{num .Y1}}" x2="{{num .X2}}" y2="{{num .Y2}}"/>
{{- end}}
  </g>
{{- end}}
{{- range .Edges}}
  <line x1="{{num .X1}}" y1="{{num .Y1}}" x2="{{num .X2}}" y2="{{num .Y2}}" stroke="black" stroke-width="{{num $.Opts.EdgeWidth}}"/>
{{- end}}
{{- range .Vertices}}
  <circle cx="{{num .X}}" cy="{{num .Y}}" r="{{num $.Opts.VertexRadius}}" fill="black"/>
{{- end}}
</svg>
`

var tmpl = template.Must(template.New("svg").Funcs(template.FuncMap{"num": formatNum}).Parse(svgTemplate))

// formatNum prints at most six decimals without trailing zeros.
func formatNum(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// SVG writes g with the markers recorded in es. A nil es draws no markers.
func SVG(w io.Writer, g *graph.Graph, es *validate.ErrorState, opts Options) error {
	data := svgData{Opts: opts}

	if es != nil {
		size := opts.VertexRadius * 3.5
		for _, id := range es.LowDegreeVertices {
			v := g.Vertex(id)
			if v == nil {
				continue
			}
			data.Triangles = append(data.Triangles, [3]svgPoint{
				{v.X, v.Y - size},
				{v.X - size*0.866, v.Y + size*0.5},
				{v.X + size*0.866, v.Y + size*0.5},
			})
		}

		half := opts.VertexRadius * 3 / 2
		for _, c := range es.IntersectingEdges.Crossings(g) {
			x, y := c.At.X, c.At.Y
			data.Crosses = append(data.Crosses, [2]svgLine{
				{x - half, y - half, x + half, y + half},
				{x - half, y + half, x + half, y - half},
			})
		}
	}

	for _, e := range g.Edges() {
		seg, ok := g.Segment(e.ID)
		if !ok {
			continue
		}
		data.Edges = append(data.Edges, svgLine{seg.A.X, seg.A.Y, seg.B.X, seg.B.Y})
	}
	for _, v := range g.Vertices() {
		data.Vertices = append(data.Vertices, svgPoint{v.X, v.Y})
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}
