// Package entry defines the core domain types for daygrid.
package entry

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"daygrid/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
)

// Domain errors.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrLaneNotFound  = errors.New("lane not found")
)

// Entry represents a time-boxed item on a day's schedule.
// Start == End denotes a milestone (zero-duration marker).
type Entry struct {
	ID       string
	Date     time.Time
	Start    string // "HH:MM" format
	End      string // "HH:MM" format
	LaneID   string // "" means the uncategorized lane
	ParentID string // "" means root

	// Depth is the cached nesting level (0 for roots). It is advisory only;
	// layout recomputes effective nesting from the parent graph.
	Depth int

	// Display attributes, carried through layout and gestures unchanged.
	Title    string
	Color    string
	Location string
	Notes    string

	CreatedAt time.Time
}

// New creates a new Entry with validation.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// start and end must be in HH:MM format. End earlier than start is accepted:
// with a display window that spans midnight, such an entry ends on the next
// calendar day. start == end creates a milestone.
func New(title, date, start, end string) (*Entry, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if err := validateTimeFormat(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if err := validateTimeFormat(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}

	return &Entry{
		ID:        uuid.NewString(),
		Date:      day,
		Start:     start,
		End:       end,
		Title:     title,
		CreatedAt: time.Now(),
	}, nil
}

func validateTimeFormat(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// IsMilestone returns true if the entry has zero duration.
func (e *Entry) IsMilestone() bool {
	return e.Start == e.End
}

// Duration returns the entry length in minutes. An end earlier than the start
// rolls over midnight into the next calendar day.
func (e *Entry) Duration() int {
	start := clockMinutes(e.Start)
	end := clockMinutes(e.End)
	if end < start {
		end += 24 * 60
	}
	return end - start
}

// clockMinutes converts "HH:MM" to minutes since midnight, 0 on bad input.
func clockMinutes(s string) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// IsRoot returns true if the entry has no parent.
func (e *Entry) IsRoot() bool {
	return e.ParentID == ""
}

// Clone returns a copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

// SortForDisplay orders entries by start ascending, longer duration first on
// ties, then by id. This is the canonical order shared by layout and the CLI
// list output, so renders are stable under equal inputs.
func SortForDisplay(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return a.ID < b.ID
	})
}
