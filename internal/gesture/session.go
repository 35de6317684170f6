// Package gesture interprets pointer-down/move/up sequences against the
// rendered time grid as create, move, and resize operations on entries.
//
// The state machine is expressed as pure transitions over an owned Session
// value, independent of any event-loop binding: the TUI feeds it pointer
// positions, and the session mutates exactly one entry (its draft or the
// live entry it anchors) for live visual feedback. Persistence happens once,
// from the Result of Finish.
package gesture

import (
	"math"
	"time"

	"daygrid/internal/entry"
	"daygrid/internal/timegrid"
)

// DefaultThresholdPx is the pointer displacement below which a pointer-down/
// up pair is treated as a stationary click rather than a drag.
const DefaultThresholdPx = 5.0

// Type identifies the kind of drag session.
type Type int

const (
	Create Type = iota
	Move
	ResizeStart
	ResizeEnd
)

// String names the session type for status output.
func (t Type) String() string {
	switch t {
	case Create:
		return "create"
	case Move:
		return "move"
	case ResizeStart:
		return "resize-start"
	case ResizeEnd:
		return "resize-end"
	default:
		return "unknown"
	}
}

// Point is a pointer position in grid pixels: X across the lane axis,
// Y down the time axis.
type Point struct {
	X float64
	Y float64
}

// Config supplies the grid geometry a session snaps against. LaneAt resolves
// the lane under a pointer's x position; it must always return a lane (the
// uncategorized lane when nothing else matches).
type Config struct {
	Window      timegrid.Window
	LaneAt      func(x float64) entry.Lane
	ThresholdPx float64
}

func (c Config) threshold() float64 {
	if c.ThresholdPx <= 0 {
		return DefaultThresholdPx
	}
	return c.ThresholdPx
}

func (c Config) laneAt(x float64) entry.Lane {
	if c.LaneAt == nil {
		return entry.UncategorizedLane()
	}
	return c.LaneAt(x)
}

// Snapshot is an entry's pre-drag geometry, kept for no-change detection and
// for reverting after a failed commit.
type Snapshot struct {
	Start  string
	End    string
	LaneID string
	Color  string
}

// TakeSnapshot captures the fields a drag can modify.
func TakeSnapshot(e *entry.Entry) Snapshot {
	return Snapshot{Start: e.Start, End: e.End, LaneID: e.LaneID, Color: e.Color}
}

// Restore puts the snapshot back onto the entry. Called when the store
// rejects a commit so no partial visual state survives.
func (s Snapshot) Restore(e *entry.Entry) {
	e.Start = s.Start
	e.End = s.End
	e.LaneID = s.LaneID
	e.Color = s.Color
}

// Session is the single active drag. It exists only between pointer-down and
// pointer-up and is destroyed unconditionally on pointer-up. Only one session
// exists at a time; the owner ignores pointer-downs while one is active.
type Session struct {
	Type  Type
	Entry *entry.Entry // draft for create, live reference otherwise

	anchor        Point
	anchorMinutes int
	before        Snapshot
	dragged       bool
}

// Dragged reports whether pointer displacement ever exceeded the click
// threshold.
func (s *Session) Dragged() bool {
	return s.dragged
}

// Before returns the pre-drag snapshot.
func (s *Session) Before() Snapshot {
	return s.before
}

// BeginCreate starts a create session: pointer-down on empty grid space.
// The draft anchors a milestone at the snapped pointer time, in the lane
// under the pointer.
func BeginCreate(cfg Config, date time.Time, pt Point) *Session {
	mins := cfg.Window.Snap(cfg.Window.PixelsToMinutes(pt.Y))
	lane := cfg.laneAt(pt.X)
	t := timegrid.MinutesToTime(mins)

	draft := &entry.Entry{
		Date:   date,
		Start:  t,
		End:    t,
		LaneID: lane.ID,
		Color:  lane.Color,
	}
	return &Session{
		Type:          Create,
		Entry:         draft,
		anchor:        pt,
		anchorMinutes: mins,
		before:        TakeSnapshot(draft),
	}
}

// BeginMove starts a move session: pointer-down on an entry's body.
func BeginMove(cfg Config, e *entry.Entry, pt Point) *Session {
	return &Session{
		Type:          Move,
		Entry:         e,
		anchor:        pt,
		anchorMinutes: cfg.Window.Snap(cfg.Window.PixelsToMinutes(pt.Y)),
		before:        TakeSnapshot(e),
	}
}

// BeginResize starts a resize session from the entry's top (fromStart) or
// bottom edge handle.
func BeginResize(cfg Config, e *entry.Entry, fromStart bool, pt Point) *Session {
	t := ResizeEnd
	if fromStart {
		t = ResizeStart
	}
	return &Session{
		Type:          t,
		Entry:         e,
		anchor:        pt,
		anchorMinutes: cfg.Window.Snap(cfg.Window.PixelsToMinutes(pt.Y)),
		before:        TakeSnapshot(e),
	}
}

// Update applies a pointer-move to the session, mutating the session's entry
// for live feedback. Below the click threshold the entry is left untouched.
func (s *Session) Update(cfg Config, pt Point) {
	if s == nil {
		return
	}
	dx, dy := pt.X-s.anchor.X, pt.Y-s.anchor.Y
	if !s.dragged && math.Hypot(dx, dy) <= cfg.threshold() {
		return
	}
	s.dragged = true

	cur := cfg.Window.Snap(cfg.Window.PixelsToMinutes(pt.Y))
	grid := cfg.Window.GridMinutes
	if grid <= 0 {
		grid = 1
	}
	w := cfg.Window
	startMin := w.TimeToMinutes(s.before.Start)
	endMin := w.TimeToMinutes(s.before.End)

	switch s.Type {
	case Create:
		lo, hi := s.anchorMinutes, cur
		if hi < lo {
			lo, hi = hi, lo
		}
		s.Entry.Start = timegrid.MinutesToTime(lo)
		s.Entry.End = timegrid.MinutesToTime(hi)

	case Move:
		delta := cur - s.anchorMinutes
		// Keep the whole interval inside the window.
		if startMin+delta < w.StartMinutes() {
			delta = w.StartMinutes() - startMin
		}
		if endMin+delta > w.EndMinutes() {
			delta = w.EndMinutes() - endMin
		}
		s.Entry.Start = timegrid.MinutesToTime(startMin + delta)
		s.Entry.End = timegrid.MinutesToTime(endMin + delta)

		// Lane and its color are reassigned continuously, not on commit.
		lane := cfg.laneAt(pt.X)
		s.Entry.LaneID = lane.ID
		s.Entry.Color = lane.Color

	case ResizeEnd:
		curStart := w.TimeToMinutes(s.Entry.Start)
		end := cur
		if end < curStart+grid {
			end = curStart + grid
		}
		if end > w.EndMinutes() {
			end = w.EndMinutes()
		}
		s.Entry.End = timegrid.MinutesToTime(end)

	case ResizeStart:
		curEnd := w.TimeToMinutes(s.Entry.End)
		start := cur
		if start > curEnd-grid {
			start = curEnd - grid
		}
		if start < w.StartMinutes() {
			start = w.StartMinutes()
		}
		s.Entry.Start = timegrid.MinutesToTime(start)
	}
}

// Outcome is what the owner should do after pointer-up.
type Outcome int

const (
	// None: nothing changed; no editor, no commit.
	None Outcome = iota
	// OpenEditor: open the entry editor. For create this carries the draft
	// (a create never auto-commits, not even a zero-movement milestone); for
	// move/resize it is the click-to-edit path.
	OpenEditor
	// Commit: persist the changed fields, reverting to the snapshot if the
	// store rejects them.
	Commit
)

// Changes carries only the fields a drag modified. Nil means unchanged.
type Changes struct {
	Start  *string
	End    *string
	LaneID *string
	Color  *string
}

// Empty reports whether no field changed.
func (c Changes) Empty() bool {
	return c.Start == nil && c.End == nil && c.LaneID == nil && c.Color == nil
}

// Result is the outcome of Finish. Snapshot is retained so the owner can
// revert the entry if the commit fails.
type Result struct {
	Outcome  Outcome
	Type     Type
	Entry    *entry.Entry
	Changes  Changes
	Snapshot Snapshot
}

// Finish applies the final pointer position and ends the session. The
// session must not be used afterwards.
func (s *Session) Finish(cfg Config, pt Point) Result {
	if s == nil {
		return Result{Outcome: None}
	}
	s.Update(cfg, pt)

	res := Result{Type: s.Type, Entry: s.Entry, Snapshot: s.before}

	switch s.Type {
	case Create:
		// The editor decides: non-zero drafts arrive prefilled, a stationary
		// click still offers a milestone but never commits one by itself.
		res.Outcome = OpenEditor

	default:
		if !s.dragged {
			res.Outcome = OpenEditor
			return res
		}
		res.Changes = diff(s.before, s.Entry)
		if res.Changes.Empty() {
			res.Outcome = None
			return res
		}
		res.Outcome = Commit
	}
	return res
}

// diff returns the fields that differ from the pre-drag snapshot.
func diff(before Snapshot, e *entry.Entry) Changes {
	var c Changes
	if e.Start != before.Start {
		c.Start = &e.Start
	}
	if e.End != before.End {
		c.End = &e.End
	}
	if e.LaneID != before.LaneID {
		c.LaneID = &e.LaneID
	}
	if e.Color != before.Color {
		c.Color = &e.Color
	}
	return c
}
