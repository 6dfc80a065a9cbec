package render

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/validate"
)

func TestSVGCrossingDiagonals(t *testing.T) {
	g := graph.New()
	a := g.AddVertex(0, 0)
	b := g.AddVertex(1, 1)
	c := g.AddVertex(1, 0)
	d := g.AddVertex(0, 1)
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(c, d)

	es := validate.NewErrorState(nil)
	es.Refresh(g)

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, g, es, DefaultOptions()))

	gold := goldie.New(t)
	gold.Assert(t, "crossing", buf.Bytes())
}

func TestSVGCleanTriangle(t *testing.T) {
	g := graph.New()
	a := g.AddVertex(0.25, 0.25)
	b := g.AddVertex(0.75, 0.25)
	c := g.AddVertex(0.5, 0.75)
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(b, c)
	_, _ = g.AddEdge(c, a)

	es := validate.NewErrorState(nil)
	es.Refresh(g)
	require.True(t, es.OK())

	opts := DefaultOptions()
	opts.Pixels = 400

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, g, es, opts))

	gold := goldie.New(t)
	gold.Assert(t, "triangle", buf.Bytes())
}

func TestSVGWithoutErrorState(t *testing.T) {
	g := graph.New()
	g.AddVertex(0.5, 0.5)

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, g, nil, DefaultOptions()))
	assert.NotContains(t, buf.String(), "polygon")
	assert.Contains(t, buf.String(), `<circle cx="0.5" cy="0.5"`)
}

func TestFormatNum(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		1:          "1",
		0.5:        "0.5",
		-0.0175:    "-0.0175",
		0.0000001:  "0",
		-0.0000001: "0",
		12.3456789: "12.345679",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNum(in), "%v", in)
	}
}
