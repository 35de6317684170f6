package layout

import (
	"errors"
	"fmt"

	"daygrid/internal/entry"
	"daygrid/internal/timegrid"
)

// Structural errors. These are fatal to the layout pass for the date; the
// caller's fallback is LayoutDayFlat.
var (
	ErrCyclicParent  = errors.New("cyclic parent reference")
	ErrUnknownParent = errors.New("entry references unknown parent")
)

// MinEntryHeightPx is the minimum rendered height. Milestones and very short
// entries are floored to this so they stay visible and hit-testable.
const MinEntryHeightPx = 1.0

// Box is the layout result for one entry. It has no independent lifecycle:
// it is recomputed in full on any change to the entry set, the window, or
// the grid granularity, never patched incrementally.
type Box struct {
	Entry *entry.Entry

	// Vertical geometry in pixels from the window top.
	Top    float64
	Height float64

	// Column geometry relative to the parent's band.
	ColumnIndex    int
	ColumnCount    int
	ColumnLeftPct  float64
	ColumnWidthPct float64

	// Absolute geometry within the full row (0-100).
	LeftPct  float64
	WidthPct float64

	// ContentWidthPct is the fraction of the entry's own band reserved for
	// its own label; the rest is the descendants' nested band.
	ContentWidthPct float64
}

// Day is the layout result for one date (or one lane column of it).
type Day struct {
	Boxes []*Box // parents ordered before their children
	byID  map[string]*Box

	// Flat reports that the structural fallback was used and nesting
	// was ignored.
	Flat bool
}

// Box returns the layout box for an entry id, or nil.
func (d *Day) Box(id string) *Box {
	return d.byID[id]
}

// band is a horizontal range in percent of the full row.
type band struct {
	left  float64
	width float64
}

var fullBand = band{left: 0, width: 100}

// contentShare returns the percentage of an entry's band its own content
// occupies, based on the deepest chain of descendants below it.
func contentShare(maxDescendantDepth int) float64 {
	switch {
	case maxDescendantDepth <= 0:
		return 100
	case maxDescendantDepth == 1:
		return 50
	default:
		return 100.0 / 3
	}
}

// LayoutDay lays out one date's entries: siblings are packed into overlap
// columns and each parent's band is recursively subdivided between its own
// content and its descendants. Returns a structural error for cyclic or
// dangling parent references.
func LayoutDay(entries []*entry.Entry, w timegrid.Window) (*Day, error) {
	t, err := buildTree(entries)
	if err != nil {
		return nil, err
	}

	d := &Day{byID: make(map[string]*Box, len(entries))}
	if err := t.layoutLevel("", fullBand, w, d); err != nil {
		return nil, err
	}
	return d, nil
}

// LayoutDayFlat lays entries out unnested, every entry treated as a root
// with full content width. This is the fallback when LayoutDay reports a
// structural error.
func LayoutDayFlat(entries []*entry.Entry, w timegrid.Window) *Day {
	sorted := make([]*entry.Entry, len(entries))
	copy(sorted, entries)
	entry.SortForDisplay(sorted)

	d := &Day{byID: make(map[string]*Box, len(entries)), Flat: true}
	placeSiblings(sorted, fullBand, w, d, func(*entry.Entry) float64 { return 100 })
	return d
}

// tree holds the per-date parent graph plus the memoized descendant depths.
type tree struct {
	children map[string][]*entry.Entry
	depth    map[string]int // entry id -> max descendant depth
}

// buildTree indexes entries by parent and memoizes every entry's maximum
// descendant depth, detecting cycles and dangling parents up front so the
// recursive walk cannot hang.
func buildTree(entries []*entry.Entry) (*tree, error) {
	index := make(map[string]*entry.Entry, len(entries))
	for _, e := range entries {
		index[e.ID] = e
	}

	t := &tree{
		children: make(map[string][]*entry.Entry),
		depth:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.ParentID != "" {
			if _, ok := index[e.ParentID]; !ok {
				return nil, fmt.Errorf("%w: entry %s -> parent %s", ErrUnknownParent, e.ID, e.ParentID)
			}
		}
		t.children[e.ParentID] = append(t.children[e.ParentID], e)
	}
	for pid := range t.children {
		entry.SortForDisplay(t.children[pid])
	}

	// Iterative-marking DFS: visiting=1, done=2.
	state := make(map[string]int8, len(entries))
	var walk func(id string) (int, error)
	walk = func(id string) (int, error) {
		switch state[id] {
		case 1:
			return 0, fmt.Errorf("%w: at entry %s", ErrCyclicParent, id)
		case 2:
			return t.depth[id], nil
		}
		state[id] = 1
		deepest := -1
		for _, c := range t.children[id] {
			d, err := walk(c.ID)
			if err != nil {
				return 0, err
			}
			if d > deepest {
				deepest = d
			}
		}
		state[id] = 2
		t.depth[id] = deepest + 1
		return deepest + 1, nil
	}
	for _, e := range entries {
		if _, err := walk(e.ID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// layoutLevel packs the children of parentID inside the given band, then
// recurses into each child that has descendants of its own.
func (t *tree) layoutLevel(parentID string, b band, w timegrid.Window, d *Day) error {
	siblings := t.children[parentID]
	if len(siblings) == 0 {
		return nil
	}

	boxes := placeSiblings(siblings, b, w, d, func(e *entry.Entry) float64 {
		return contentShare(t.depth[e.ID])
	})

	for i, e := range siblings {
		if t.depth[e.ID] == 0 {
			continue
		}
		box := boxes[i]
		sub := band{
			left:  box.LeftPct + box.WidthPct*box.ContentWidthPct/100,
			width: box.WidthPct * (100 - box.ContentWidthPct) / 100,
		}
		if err := t.layoutLevel(e.ID, sub, w, d); err != nil {
			return err
		}
	}
	return nil
}

// placeSiblings runs the overlap packer over one sibling set and materializes
// boxes inside the band. share decides each entry's ContentWidthPct.
func placeSiblings(siblings []*entry.Entry, b band, w timegrid.Window, d *Day, share func(*entry.Entry) float64) []*Box {
	spans := make([]Span, len(siblings))
	for i, e := range siblings {
		spans[i] = Span{
			ID:    e.ID,
			Start: w.TimeToMinutes(e.Start),
			End:   w.TimeToMinutes(e.End),
		}
	}
	placements := Pack(spans)

	boxes := make([]*Box, len(siblings))
	for i, e := range siblings {
		p := placements[i]
		top := w.MinutesToPixels(spans[i].Start)
		height := w.MinutesToPixels(spans[i].End) - top
		if w.TotalMinutes() > 0 && height < MinEntryHeightPx {
			height = MinEntryHeightPx
		}

		box := &Box{
			Entry:           e,
			Top:             top,
			Height:          height,
			ColumnIndex:     p.ColumnIndex,
			ColumnCount:     p.ColumnCount,
			ColumnLeftPct:   p.LeftPct(),
			ColumnWidthPct:  p.WidthPct(),
			LeftPct:         b.left + b.width*p.LeftPct()/100,
			WidthPct:        b.width * p.WidthPct() / 100,
			ContentWidthPct: share(e),
		}
		d.Boxes = append(d.Boxes, box)
		d.byID[e.ID] = box
		boxes[i] = box
	}
	return boxes
}
