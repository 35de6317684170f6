package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"daygrid/internal/gesture"
)

// openEditor enters the editor modal for a gesture result: a create draft
// (possibly a milestone, which only the explicit confirm here can commit)
// or an existing entry from the click-to-edit path.
func (m Model) openEditor(res gesture.Result) Model {
	m.mode = ModeEditor
	m.editorEntry = res.Entry
	m.editorIsNew = res.Type == gesture.Create
	m.editorSource = res.Type
	m.editorTitle.SetValue(res.Entry.Title)
	m.editorTitle.CursorEnd()
	m.editorTitle.Focus()
	return m
}

// updateEditor handles keys while the editor modal is open.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeEditor(), nil

	case "enter":
		return m.confirmEditor()
	}

	var cmd tea.Cmd
	m.editorTitle, cmd = m.editorTitle.Update(msg)
	return m, cmd
}

// closeEditor abandons the modal. An unconfirmed create draft is discarded;
// in particular a zero-movement create never becomes a persisted milestone.
func (m Model) closeEditor() Model {
	m.mode = ModeNormal
	m.editorEntry = nil
	m.editorTitle.Blur()
	m.relayout()
	return m
}

// confirmEditor commits the modal: insert the draft, or save the new title.
func (m Model) confirmEditor() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.editorTitle.Value())
	if title == "" {
		return m.withStatus("Title cannot be empty"), nil
	}

	e := m.editorEntry
	e.Title = title
	isNew := m.editorIsNew
	m = m.closeEditor()

	if isNew {
		e.ID = uuid.NewString()
		// Optimistic insert; entryCreatedMsg removes it again on failure.
		m.entries = append(m.entries, e)
		m.relayout()
		return m, m.createCmd(e)
	}
	return m, m.updateTitleCmd(e.ID, title)
}
