package layout

import (
	"errors"
	"math"
	"testing"

	"daygrid/internal/entry"
	"daygrid/internal/timegrid"
)

func layoutWindow() timegrid.Window {
	return timegrid.Window{StartHour: 7, EndHour: 23, HeightPx: 960, GridMinutes: 30}
}

func testEntry(id, start, end, parentID string) *entry.Entry {
	return &entry.Entry{ID: id, Start: start, End: end, ParentID: parentID, Title: id}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLayoutDayFlatEntries(t *testing.T) {
	w := layoutWindow()
	d, err := LayoutDay([]*entry.Entry{
		testEntry("a", "09:00", "10:00", ""),
		testEntry("b", "09:30", "11:00", ""),
		testEntry("c", "12:00", "13:00", ""),
	}, w)
	if err != nil {
		t.Fatalf("LayoutDay: %v", err)
	}

	a, b, c := d.Box("a"), d.Box("b"), d.Box("c")
	if a == nil || b == nil || c == nil {
		t.Fatal("missing boxes")
	}
	if !near(a.WidthPct, 50) || !near(b.WidthPct, 50) {
		t.Errorf("overlapping roots: widths %f/%f, want 50/50", a.WidthPct, b.WidthPct)
	}
	if !near(c.WidthPct, 100) {
		t.Errorf("lone root width = %f, want 100", c.WidthPct)
	}
	for _, box := range []*Box{a, b, c} {
		if !near(box.ContentWidthPct, 100) {
			t.Errorf("%s: childless content share = %f, want 100", box.Entry.ID, box.ContentWidthPct)
		}
	}

	// Vertical geometry follows the window scale: 60 min at 1px/min.
	if !near(a.Top, w.MinutesToPixels(9*60)) {
		t.Errorf("a.Top = %f", a.Top)
	}
	if !near(a.Height, 60) {
		t.Errorf("a.Height = %f, want 60", a.Height)
	}
}

func TestLayoutDayNesting(t *testing.T) {
	// One parent with a single-level child: parent keeps 50% of its band
	// for content, child fills the remaining 50%.
	d, err := LayoutDay([]*entry.Entry{
		testEntry("p", "09:00", "12:00", ""),
		testEntry("c", "09:30", "10:30", "p"),
	}, layoutWindow())
	if err != nil {
		t.Fatalf("LayoutDay: %v", err)
	}

	p, c := d.Box("p"), d.Box("c")
	if !near(p.ContentWidthPct, 50) {
		t.Errorf("parent content share = %f, want 50", p.ContentWidthPct)
	}
	if !near(c.ContentWidthPct, 100) {
		t.Errorf("leaf content share = %f, want 100", c.ContentWidthPct)
	}
	if !near(c.LeftPct, 50) || !near(c.WidthPct, 50) {
		t.Errorf("child band = [%f, %f], want [50, 50]", c.LeftPct, c.WidthPct)
	}
}

func TestLayoutDayDeepNesting(t *testing.T) {
	// Three levels: the root has a grandchild chain, so its content share
	// drops to a third; the middle entry has one level below, so half.
	d, err := LayoutDay([]*entry.Entry{
		testEntry("root", "09:00", "17:00", ""),
		testEntry("mid", "10:00", "12:00", "root"),
		testEntry("leaf", "10:30", "11:30", "mid"),
	}, layoutWindow())
	if err != nil {
		t.Fatalf("LayoutDay: %v", err)
	}

	root, mid, leaf := d.Box("root"), d.Box("mid"), d.Box("leaf")
	if !near(root.ContentWidthPct, 100.0/3) {
		t.Errorf("root content share = %f, want %f", root.ContentWidthPct, 100.0/3)
	}
	if !near(mid.ContentWidthPct, 50) {
		t.Errorf("mid content share = %f, want 50", mid.ContentWidthPct)
	}
	if !near(leaf.ContentWidthPct, 100) {
		t.Errorf("leaf content share = %f, want 100", leaf.ContentWidthPct)
	}

	// Band containment: each level nests inside the previous one's
	// descendant band.
	if mid.LeftPct < root.LeftPct || mid.LeftPct+mid.WidthPct > root.LeftPct+root.WidthPct+1e-9 {
		t.Errorf("mid band [%f,%f) escapes root band [%f,%f)",
			mid.LeftPct, mid.LeftPct+mid.WidthPct, root.LeftPct, root.LeftPct+root.WidthPct)
	}
	if leaf.LeftPct < mid.LeftPct || leaf.LeftPct+leaf.WidthPct > mid.LeftPct+mid.WidthPct+1e-9 {
		t.Errorf("leaf band [%f,%f) escapes mid band [%f,%f)",
			leaf.LeftPct, leaf.LeftPct+leaf.WidthPct, mid.LeftPct, mid.LeftPct+mid.WidthPct)
	}
}

func TestLayoutDayParentsBeforeChildren(t *testing.T) {
	d, err := LayoutDay([]*entry.Entry{
		testEntry("c", "09:30", "10:30", "p"),
		testEntry("p", "09:00", "12:00", ""),
	}, layoutWindow())
	if err != nil {
		t.Fatalf("LayoutDay: %v", err)
	}
	pos := make(map[string]int, len(d.Boxes))
	for i, b := range d.Boxes {
		pos[b.Entry.ID] = i
	}
	if pos["p"] > pos["c"] {
		t.Errorf("parent ordered after child: %v", pos)
	}
}

func TestLayoutDayCycleError(t *testing.T) {
	_, err := LayoutDay([]*entry.Entry{
		testEntry("a", "09:00", "10:00", "b"),
		testEntry("b", "09:00", "10:00", "a"),
	}, layoutWindow())
	if !errors.Is(err, ErrCyclicParent) {
		t.Fatalf("err = %v, want ErrCyclicParent", err)
	}
}

func TestLayoutDayUnknownParentError(t *testing.T) {
	_, err := LayoutDay([]*entry.Entry{
		testEntry("a", "09:00", "10:00", "ghost"),
	}, layoutWindow())
	if !errors.Is(err, ErrUnknownParent) {
		t.Fatalf("err = %v, want ErrUnknownParent", err)
	}
}

func TestLayoutDayFlatFallback(t *testing.T) {
	entries := []*entry.Entry{
		testEntry("a", "09:00", "10:00", "b"),
		testEntry("b", "09:00", "10:00", "a"),
	}
	d := LayoutDayFlat(entries, layoutWindow())
	if !d.Flat {
		t.Error("Flat flag not set")
	}
	if len(d.Boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(d.Boxes))
	}
	for _, b := range d.Boxes {
		if !near(b.ContentWidthPct, 100) {
			t.Errorf("%s: flat content share = %f, want 100", b.Entry.ID, b.ContentWidthPct)
		}
		// The pair still overlaps, so they split columns.
		if !near(b.WidthPct, 50) {
			t.Errorf("%s: flat width = %f, want 50", b.Entry.ID, b.WidthPct)
		}
	}
}

func TestLayoutDayMilestoneHeightFloor(t *testing.T) {
	d, err := LayoutDay([]*entry.Entry{
		testEntry("m", "10:00", "10:00", ""),
	}, layoutWindow())
	if err != nil {
		t.Fatalf("LayoutDay: %v", err)
	}
	if got := d.Box("m").Height; got < MinEntryHeightPx {
		t.Errorf("milestone height = %f, want >= %f", got, MinEntryHeightPx)
	}
}

func TestLayoutDayDegenerateWindow(t *testing.T) {
	w := timegrid.Window{StartHour: 9, EndHour: 9, HeightPx: 500, GridMinutes: 30}
	d, err := LayoutDay([]*entry.Entry{
		testEntry("a", "09:00", "10:00", ""),
	}, w)
	if err != nil {
		t.Fatalf("LayoutDay: %v", err)
	}
	box := d.Box("a")
	if box.Top != 0 || box.Height != 0 {
		t.Errorf("degenerate window should yield zero-height boxes, got top=%f height=%f", box.Top, box.Height)
	}
}

func TestLayoutDayEmpty(t *testing.T) {
	d, err := LayoutDay(nil, layoutWindow())
	if err != nil {
		t.Fatalf("LayoutDay: %v", err)
	}
	if len(d.Boxes) != 0 {
		t.Errorf("boxes = %d, want 0", len(d.Boxes))
	}
}
