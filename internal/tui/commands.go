package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daygrid/internal/entry"
	"daygrid/internal/gesture"
	"daygrid/internal/store"
)

// dayLoadedMsg carries a fresh snapshot of the active date.
type dayLoadedMsg struct {
	entries []*entry.Entry
	lanes   []entry.Lane
}

// errMsg reports a failed command.
type errMsg struct {
	err error
}

// commitDoneMsg reports the outcome of persisting a gesture. On failure the
// entry is reverted to its pre-drag snapshot.
type commitDoneMsg struct {
	entry *entry.Entry
	snap  gesture.Snapshot
	err   error
}

// entryCreatedMsg reports the outcome of persisting a new entry.
type entryCreatedMsg struct {
	entry *entry.Entry
	err   error
}

// loadDayCmd fetches the entry set and lanes for the active date.
func (m Model) loadDayCmd() tea.Cmd {
	s, date := m.store, m.date
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		lanes, err := s.Lanes(ctx)
		if err != nil {
			return errMsg{err}
		}
		entries, err := s.EntriesByDate(ctx, date)
		if err != nil {
			return errMsg{err}
		}
		return dayLoadedMsg{entries: entries, lanes: lanes}
	}
}

// commitCmd persists the changed fields of a finished move/resize gesture.
// The in-memory entry is already mutated optimistically; the snapshot rides
// along so the model can revert it if the store says no.
func (m Model) commitCmd(res gesture.Result) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := s.UpdateEntry(ctx, res.Entry.ID, store.Changes{
			Start:  res.Changes.Start,
			End:    res.Changes.End,
			LaneID: res.Changes.LaneID,
			Color:  res.Changes.Color,
		})
		return commitDoneMsg{entry: res.Entry, snap: res.Snapshot, err: err}
	}
}

// createCmd persists a confirmed create draft.
func (m Model) createCmd(e *entry.Entry) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.CreateEntry(ctx, e)
		return entryCreatedMsg{entry: e, err: err}
	}
}

// updateTitleCmd persists a title edit from the editor.
func (m Model) updateTitleCmd(id, title string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.UpdateEntry(ctx, id, store.Changes{Title: &title}); err != nil {
			return errMsg{err}
		}
		return nil
	}
}
