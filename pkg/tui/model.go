// Package tui is the terminal editor: a character-grid paper driven by the
// keyboard or the mouse, over a session.Session.
package tui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DrSkyle/foldcut/pkg/session"
	"github.com/DrSkyle/foldcut/pkg/version"
)

// Paper origin on screen: one title line, then the paper border.
const (
	originX = 1
	originY = 2
)

// maxFindings caps the policy lines in the status pane.
const maxFindings = 3

type Model struct {
	Session *session.Session

	keys   keyMap
	help   help.Model
	logger *slog.Logger

	width, height int // paper size in cells
	cursorCol     int
	cursorRow     int
	erasing       bool // right button held

	statusMsg string
	quitting  bool
}

// PickRadius is the vertex hit distance that makes every cell of a
// width x height paper able to reach a vertex placed at its center.
func PickRadius(width, height int) float64 {
	return math.Hypot(0.5/float64(width), 0.5/float64(height)) * 1.05
}

// NewModel wraps sess in an editor with a width x height cell paper.
func NewModel(sess *session.Session, width, height int, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		Session:   sess,
		keys:      defaultKeyMap(),
		help:      help.New(),
		logger:    logger,
		width:     width,
		height:    height,
		cursorCol: width / 2,
		cursorRow: height / 2,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// cursorPaper returns the paper coordinates under the cursor.
func (m Model) cursorPaper() (float64, float64) {
	return (float64(m.cursorCol) + 0.5) / float64(m.width), (float64(m.cursorRow) + 0.5) / float64(m.height)
}

// Update handles key and mouse input. Every edit goes through the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.Session
	m.statusMsg = ""
	m.logger.Debug("Key pressed", "key", msg.String(), "tool", sess.Tool().String())

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.AddVertex):
		sess.SetTool(session.ToolAddVertex)
	case key.Matches(msg, m.keys.MoveVertex):
		sess.SetTool(session.ToolMoveVertex)
	case key.Matches(msg, m.keys.AddEdge):
		if !sess.SetTool(session.ToolAddEdge) {
			m.statusMsg = "Add at least two vertices before drawing edges"
		}
	case key.Matches(msg, m.keys.Undo):
		if !sess.Undo() {
			m.statusMsg = "Nothing to undo"
		}
	case key.Matches(msg, m.keys.Redo):
		if !sess.Redo() {
			m.statusMsg = "Nothing to redo"
		}
	case key.Matches(msg, m.keys.Cancel):
		sess.Cancel()
	case key.Matches(msg, m.keys.Erase):
		x, y := sess.AimEraser(m.cursorPaper())
		if !sess.Erase(x, y) {
			m.statusMsg = "Nothing to erase here"
		}
	case key.Matches(msg, m.keys.Click):
		x, y := m.cursorPaper()
		if _, dragging := sess.Dragging(); dragging {
			sess.Release(x, y)
		} else {
			sess.Press(x, y)
		}
	case key.Matches(msg, m.keys.Up):
		m = m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m = m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m = m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m = m.moveCursor(1, 0)
	}
	return m, nil
}

func (m Model) moveCursor(dc, dr int) Model {
	m.cursorCol = max(0, min(m.width-1, m.cursorCol+dc))
	m.cursorRow = max(0, min(m.height-1, m.cursorRow+dr))
	m.Session.Motion(m.cursorPaper())
	return m
}

// updateMouse maps screen cells onto the paper. Releases are forwarded even
// when they land outside it.
func (m Model) updateMouse(msg tea.MouseMsg) Model {
	col, row := msg.X-originX, msg.Y-originY
	inside := col >= 0 && col < m.width && row >= 0 && row < m.height
	if inside {
		m.cursorCol, m.cursorRow = col, row
	}
	x, y := m.cursorPaper()
	sess := m.Session

	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return m
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			sess.Press(x, y)
		case tea.MouseButtonRight:
			m.erasing = true
			sess.Erase(sess.AimEraser(x, y))
		}
	case tea.MouseActionMotion:
		if !inside {
			return m
		}
		if m.erasing {
			sess.Erase(sess.AimEraser(x, y))
		}
		sess.Motion(x, y)
	case tea.MouseActionRelease:
		m.erasing = false
		sess.Release(x, y)
	}
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	sess := m.Session

	title := titleStyle.Render(fmt.Sprintf("%s %s", version.AppName, version.Current)) +
		subtle.Render(" tool: ") + highlight.Render(sess.Tool().String())

	c := newCanvas(m.width, m.height)
	cx, cy := m.cursorPaper()
	draw(c, sess, cx, cy)
	paper := paperStyle.Render(c.render(m.cursorCol, m.cursorRow))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, paper, m.statusView()),
		m.help.View(m.keys),
	)
}

func (m Model) statusView() string {
	sess := m.Session
	es := sess.Errors()
	var b strings.Builder

	lines := es.SummaryLines()
	style := danger
	if es.OK() {
		style = special
	}
	for _, l := range lines {
		b.WriteString(style.Render(l) + "\n")
	}

	if n := len(es.Findings); n > 0 {
		b.WriteString("\n" + warning.Render(fmt.Sprintf("%d lint finding(s)", n)) + "\n")
		for i, f := range es.Findings {
			if i == maxFindings {
				b.WriteString(subtle.Render(fmt.Sprintf("  ... %d more", n-maxFindings)) + "\n")
				break
			}
			b.WriteString(warning.Render(fmt.Sprintf("  [%s] %s", f.RuleID, f.Message)) + "\n")
		}
	}

	g := sess.Graph()
	b.WriteString("\n" + subtle.Render(fmt.Sprintf("vertices %d  edges %d  pieces %d", g.VertexCount(), g.EdgeCount(), g.Components())) + "\n")
	h := sess.History()
	b.WriteString(subtle.Render(fmt.Sprintf("history %d/%d  undo %s  redo %s",
		h.Index(), h.Len()-1, yesNo(sess.CanUndo()), yesNo(sess.CanRedo()))))

	if _, ok := sess.Pending(); ok {
		b.WriteString("\n" + highlight.Render("pick the second endpoint (esc cancels)"))
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + warning.Render(m.statusMsg))
	}
	return statusStyle.Render(b.String())
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
