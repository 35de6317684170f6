package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"daygrid/internal/timegrid"
)

const helpLine = "drag: create/move/resize · click: edit · [ ]: day · r: reload · y: copy · q: quit"

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	if m.mode == ModeEditor {
		return m.renderEditor()
	}

	var sb strings.Builder
	sb.WriteString(m.renderTitle())
	sb.WriteString("\n")
	sb.WriteString(m.renderLaneHeaders())
	sb.WriteString("\n")
	sb.WriteString(m.renderGrid())
	sb.WriteString(m.renderStatus())
	return sb.String()
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("daygrid") + "  " + m.date.Format("Mon 2006-01-02")
	if m.loading {
		title += m.styles.StatusStyle.Render("  loading…")
	}
	if m.flat {
		title += m.styles.ErrorStyle.Render("  (nesting disabled: structural error)")
	}
	return ansi.Truncate(title, m.width, "…")
}

func (m Model) renderLaneHeaders() string {
	laneW := m.laneWidth()
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", rulerWidth))
	for _, lane := range m.lanes {
		name := ansi.Truncate(lane.Name, laneW-1, "…")
		cell := name + strings.Repeat(" ", max(0, laneW-lipgloss.Width(name)))
		sb.WriteString(m.styles.LaneHeaderStyle.Foreground(lipgloss.Color(lane.Color)).Render(cell))
	}
	return ansi.Truncate(sb.String(), m.width, "")
}

// hourLabels maps grid rows to the wall-clock labels shown in the ruler.
func (m Model) hourLabels() map[int]string {
	w := m.window()
	labels := make(map[int]string)
	for h := m.config.Window.StartHour; h <= m.config.Window.EndHour; h++ {
		row := int(w.MinutesToPixels(h * 60))
		if row < 0 || row >= m.gridRows() {
			continue
		}
		if _, taken := labels[row]; !taken {
			labels[row] = timegrid.MinutesToTime(h * 60)
		}
	}
	return labels
}

func (m Model) renderGrid() string {
	if m.cells == nil {
		return ""
	}
	labels := m.hourLabels()

	var sb strings.Builder
	for row := 0; row < m.cells.rows; row++ {
		label := labels[row]
		sb.WriteString(m.styles.RulerStyle.Render(fmt.Sprintf("%-*s", rulerWidth, label)))
		sb.WriteString(m.renderGridRow(row))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderGridRow renders one row of the cell buffer, batching runs of cells
// with identical ownership into single styled segments.
func (m Model) renderGridRow(row int) string {
	var sb strings.Builder
	col := 0
	for col < m.cells.cols {
		start := m.cells.at(row, col)
		var run strings.Builder
		end := col
		for end < m.cells.cols {
			c := m.cells.at(row, end)
			if c.id != start.id || c.ghost != start.ghost {
				break
			}
			run.WriteRune(c.ch)
			end++
		}

		text := run.String()
		switch {
		case start.ghost:
			sb.WriteString(m.styles.GhostStyle.Render(text))
		case start.id == "":
			sb.WriteString(m.styles.GridStyle.Render(text))
		default:
			sb.WriteString(m.styles.EntryStyle(start.color).Render(text))
		}
		col = end
	}
	return sb.String()
}

func (m Model) renderStatus() string {
	line := helpLine
	style := m.styles.StatusStyle
	if m.statusMsg != "" && time.Now().Before(m.statusTime) {
		line = m.statusMsg
		if m.err != nil {
			style = m.styles.ErrorStyle
		}
	}
	return style.Render(ansi.Truncate(line, m.width, "…"))
}

func (m Model) renderEditor() string {
	e := m.editorEntry
	if e == nil {
		return ""
	}

	verb := "Edit entry"
	if m.editorIsNew {
		verb = "New entry"
		if e.IsMilestone() {
			verb = "New milestone"
		}
	}

	span := e.Start + " – " + e.End
	if e.IsMilestone() {
		span = "◆ " + e.Start
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.TitleStyle.Render(verb),
		"",
		m.styles.ModalLabelStyle.Render(span),
		m.editorTitle.View(),
		"",
		m.styles.ModalLabelStyle.Render("enter: save · esc: cancel"),
	)
	modal := m.styles.ModalStyle.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
