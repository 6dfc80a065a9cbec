package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DrSkyle/foldcut/pkg/geom"
	"github.com/DrSkyle/foldcut/pkg/session"
)

const (
	glyphEdge     = '·'
	glyphPreview  = '∙'
	glyphVertex   = 'o'
	glyphSelected = '@'
	glyphCrossing = 'x'
)

type cell struct {
	r     rune
	style *lipgloss.Style
}

// canvas maps the unit square onto a width x height character grid.
type canvas struct {
	width, height int
	cells         [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height, cells: make([][]cell, height)}
	for row := range c.cells {
		c.cells[row] = make([]cell, width)
		for col := range c.cells[row] {
			c.cells[row][col] = cell{r: ' '}
		}
	}
	return c
}

// toPaper returns the paper coordinates of the center of a cell.
func (c *canvas) toPaper(col, row int) (float64, float64) {
	return (float64(col) + 0.5) / float64(c.width), (float64(row) + 0.5) / float64(c.height)
}

// toCell maps a paper point to its cell. Points off the paper report false.
func (c *canvas) toCell(x, y float64) (int, int, bool) {
	if x < 0 || x > 1 || y < 0 || y > 1 || math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	col := min(int(x*float64(c.width)), c.width-1)
	row := min(int(y*float64(c.height)), c.height-1)
	return col, row, true
}

func (c *canvas) set(x, y float64, r rune, style *lipgloss.Style) {
	if col, row, ok := c.toCell(x, y); ok {
		c.cells[row][col] = cell{r: r, style: style}
	}
}

// line samples s densely enough to touch every cell it crosses. Cells that
// already hold something are left alone.
func (c *canvas) line(s geom.Segment, r rune, style *lipgloss.Style) {
	dc := math.Abs(s.B.X-s.A.X) * float64(c.width)
	dr := math.Abs(s.B.Y-s.A.Y) * float64(c.height)
	steps := int(2*math.Max(dc, dr)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := s.A.X + t*(s.B.X-s.A.X)
		y := s.A.Y + t*(s.B.Y-s.A.Y)
		if col, row, ok := c.toCell(x, y); ok && c.cells[row][col].r == ' ' {
			c.cells[row][col] = cell{r: r, style: style}
		}
	}
}

func (c *canvas) render(cursorCol, cursorRow int) string {
	var b strings.Builder
	for row, cells := range c.cells {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col, cl := range cells {
			s := string(cl.r)
			switch {
			case row == cursorRow && col == cursorCol:
				s = cursorStyle.Render(s)
			case cl.style != nil:
				s = cl.style.Render(s)
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

// draw paints the session: pending preview, edges, crossings, then vertices
// on top.
func draw(c *canvas, sess *session.Session, cursorX, cursorY float64) {
	g := sess.Graph()
	es := sess.Errors()

	if pending, ok := sess.Pending(); ok && sess.Tool() == session.ToolAddEdge {
		if v := g.Vertex(pending); v != nil {
			c.line(geom.Segment{A: v.Point(), B: geom.Point{X: cursorX, Y: cursorY}}, glyphPreview, &subtle)
		}
	}

	for _, e := range g.Edges() {
		if seg, ok := g.Segment(e.ID); ok {
			c.line(seg, glyphEdge, &plain)
		}
	}

	for _, x := range es.IntersectingEdges.Crossings(g) {
		c.set(x.At.X, x.At.Y, glyphCrossing, &danger)
	}

	dragged, dragging := sess.Dragging()
	for _, v := range g.Vertices() {
		r, style := glyphVertex, &special
		switch {
		case v.Selected:
			r, style = glyphSelected, &highlight
		case dragging && v.ID == dragged:
			style = &highlight
		case es.IsLowDegree(v.ID):
			style = &danger
		}
		c.set(v.X, v.Y, r, style)
	}
}
