package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"daygrid/internal/entry"
	"daygrid/internal/gesture"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == ModeEditor {
			return m.updateEditor(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.mode == ModeEditor {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case dayLoadedMsg:
		m.setLanes(msg.lanes)
		m.entries = msg.entries
		m.loading = false
		m.relayout()
		return m, nil

	case commitDoneMsg:
		if msg.err != nil {
			// Failed commit: revert so no partial visual state survives.
			msg.snap.Restore(msg.entry)
			m.relayout()
			return m.withStatus(fmt.Sprintf("Save failed, reverted: %v", msg.err)), nil
		}
		return m, nil

	case entryCreatedMsg:
		if msg.err != nil {
			m.removeEntry(msg.entry.ID)
			m.relayout()
			return m.withStatus(fmt.Sprintf("Create failed: %v", msg.err)), nil
		}
		return m.withStatus("Created " + msg.entry.Title), nil

	case errMsg:
		m.err = msg.err
		return m.withStatus(fmt.Sprintf("Error: %v", msg.err)), nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loading = true
		return m, m.loadDayCmd()

	case "[":
		m.date = m.date.AddDate(0, 0, -1)
		m.loading = true
		m.session = nil
		return m, m.loadDayCmd()

	case "]":
		m.date = m.date.AddDate(0, 0, 1)
		m.loading = true
		m.session = nil
		return m, m.loadDayCmd()

	case "y":
		text := m.daySummary()
		if text == "" {
			return m.withStatus("Nothing to copy"), nil
		}
		if err := clipboard.WriteAll(text); err != nil {
			return m.withStatus(fmt.Sprintf("Copy failed: %v", err)), nil
		}
		return m.withStatus("Copied day summary"), nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pt, row, col, inGrid := m.gridPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// Only one drag session at a time; a second pointer-down is ignored.
		if m.session != nil || !inGrid {
			return m, nil
		}
		return m.beginDrag(pt, row, col), nil

	case tea.MouseActionMotion:
		if m.session == nil {
			return m, nil
		}
		m.session.Update(m.gestureConfig(), pt)
		m.relayout()
		return m, nil

	case tea.MouseActionRelease:
		if m.session == nil {
			return m, nil
		}
		res := m.session.Finish(m.gestureConfig(), pt)
		m.session = nil
		return m.finishDrag(res)
	}

	return m, nil
}

// gridPoint converts terminal coordinates to a grid-area point.
func (m Model) gridPoint(x, y int) (pt gesture.Point, row, col int, inGrid bool) {
	col = x - rulerWidth
	row = y - headerLines
	pt = gesture.Point{X: float64(col), Y: float64(row)}
	inGrid = row >= 0 && row < m.gridRows() && col >= 0 && col < m.gridCols()
	return pt, row, col, inGrid
}

// beginDrag opens the drag session matching what is under the pointer:
// empty space creates, an entry body moves, an edge handle resizes.
func (m Model) beginDrag(pt gesture.Point, row, col int) Model {
	cfg := m.gestureConfig()
	hit := m.hitTest(row, col)

	if hit.id == "" {
		m.session = gesture.BeginCreate(cfg, m.date, pt)
		m.sessionLane = m.laneIndexAt(col)
		m.relayout()
		return m
	}

	e := m.entryByID(hit.id)
	if e == nil {
		return m
	}
	switch {
	case hit.onTop:
		m.session = gesture.BeginResize(cfg, e, true, pt)
	case hit.onBot:
		m.session = gesture.BeginResize(cfg, e, false, pt)
	default:
		m.session = gesture.BeginMove(cfg, e, pt)
	}
	return m
}

// finishDrag routes the gesture result: editor, commit, or nothing.
func (m Model) finishDrag(res gesture.Result) (tea.Model, tea.Cmd) {
	switch res.Outcome {
	case gesture.OpenEditor:
		m.relayout()
		return m.openEditor(res), nil

	case gesture.Commit:
		m.relayout()
		return m, m.commitCmd(res)

	default:
		m.relayout()
		return m, nil
	}
}

// entryByID finds an entry in the in-memory set.
func (m *Model) entryByID(id string) *entry.Entry {
	for _, e := range m.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// removeEntry drops an entry from the in-memory set (failed create).
func (m *Model) removeEntry(id string) {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

// withStatus sets a transient status message.
func (m Model) withStatus(s string) Model {
	m.statusMsg = s
	m.statusTime = time.Now().Add(5 * time.Second)
	return m
}

// daySummary renders the day's entries as plain text for the clipboard.
func (m Model) daySummary() string {
	if len(m.entries) == 0 {
		return ""
	}
	sorted := make([]*entry.Entry, len(m.entries))
	copy(sorted, m.entries)
	entry.SortForDisplay(sorted)

	var sb strings.Builder
	sb.WriteString(m.date.Format("2006-01-02") + "\n")
	for _, e := range sorted {
		if e.IsMilestone() {
			fmt.Fprintf(&sb, "%s        ◆ %s\n", e.Start, e.Title)
		} else {
			fmt.Fprintf(&sb, "%s-%s  %s\n", e.Start, e.End, e.Title)
		}
	}
	return sb.String()
}
