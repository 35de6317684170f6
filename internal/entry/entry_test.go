package entry

import (
	"errors"
	"testing"
)

func TestNewEntry(t *testing.T) {
	e, err := New("Deep work", "2026-08-23", "09:00", "10:30")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.ID == "" {
		t.Error("id not assigned")
	}
	if e.Date.Format("2006-01-02") != "2026-08-23" {
		t.Errorf("date = %v", e.Date)
	}
	if e.IsMilestone() {
		t.Error("timed entry reported as milestone")
	}
	if !e.IsRoot() {
		t.Error("new entry should be a root")
	}
}

func TestNewEntryValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		date    string
		start   string
		end     string
		wantErr error
	}{
		{"empty title", "", "", "09:00", "10:00", ErrEmptyTitle},
		{"bad start", "x", "", "9:00", "10:00", ErrInvalidTimeFormat},
		{"bad end", "x", "", "09:00", "25:00", ErrInvalidTimeFormat},
		{"bad minutes", "x", "", "09:60", "10:00", ErrInvalidTimeFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.title, tt.date, tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewEntryAcceptsRolloverAndMilestone(t *testing.T) {
	// End before start is a midnight rollover, not an error.
	if _, err := New("late", "", "23:30", "00:30"); err != nil {
		t.Errorf("rollover rejected: %v", err)
	}

	m, err := New("ship it", "", "14:00", "14:00")
	if err != nil {
		t.Fatalf("milestone rejected: %v", err)
	}
	if !m.IsMilestone() {
		t.Error("equal times should make a milestone")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"09:00", "10:30", 90},
		{"14:00", "14:00", 0},
		{"23:30", "00:30", 60}, // rolls over midnight
	}
	for _, tt := range tests {
		e := &Entry{Start: tt.start, End: tt.end}
		if got := e.Duration(); got != tt.want {
			t.Errorf("Duration(%s-%s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	e, _ := New("original", "", "09:00", "10:00")
	c := e.Clone()
	c.Title = "copy"
	if e.Title != "original" {
		t.Error("clone shares memory with the original")
	}
}

func TestSortForDisplay(t *testing.T) {
	entries := []*Entry{
		{ID: "b", Start: "09:00", End: "10:00"},
		{ID: "a", Start: "09:00", End: "10:00"},
		{ID: "long", Start: "09:00", End: "12:00"},
		{ID: "early", Start: "08:00", End: "09:00"},
	}
	SortForDisplay(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.ID
	}
	want := []string{"early", "long", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestUncategorizedLane(t *testing.T) {
	l := UncategorizedLane()
	if l.ID != "" {
		t.Errorf("id = %q, want empty", l.ID)
	}
	if l.Color != UncategorizedLaneColor {
		t.Errorf("color = %q", l.Color)
	}
}
