package tui

import (
	"daygrid/internal/gesture"
	"daygrid/internal/layout"
)

// cell is one grid-area terminal cell after painting.
type cell struct {
	id    string // owning entry id, "" for empty, ghostID for the drag preview
	color string
	ghost bool
	ch    rune
}

// ghostID marks the create-drag preview block, which has no entry id yet.
const ghostID = "\x00ghost"

// cellGrid is the painted grid area: rows x cols cells, last-painted wins.
type cellGrid struct {
	rows, cols int
	cells      []cell
}

func newCellGrid(rows, cols int) *cellGrid {
	g := &cellGrid{rows: rows, cols: cols, cells: make([]cell, rows*cols)}
	for i := range g.cells {
		g.cells[i].ch = ' '
	}
	return g
}

func (g *cellGrid) at(row, col int) *cell {
	return &g.cells[row*g.cols+col]
}

func (g *cellGrid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// paint fills a rectangle with an owner and writes the label into the
// content-width prefix of the first row.
func (g *cellGrid) paint(id, color, label string, ghost bool, rowTop, rowBot, colLeft, colRight, contentCols int) {
	for r := rowTop; r <= rowBot; r++ {
		for c := colLeft; c <= colRight; c++ {
			if !g.inBounds(r, c) {
				continue
			}
			*g.at(r, c) = cell{id: id, color: color, ghost: ghost, ch: ' '}
		}
	}
	// Label on the first row, clipped to the entry's own content band.
	runes := []rune(label)
	for i := 0; i < contentCols && i < len(runes); i++ {
		c := colLeft + i
		if g.inBounds(rowTop, c) {
			g.at(rowTop, c).ch = runes[i]
		}
	}
}

// buildCells repaints the render/hit buffers from the current layout.
// Parents are painted before children, so descendants overlay the band
// reserved for them; the live ghost preview is painted last.
func (m *Model) buildCells() {
	rows, laneW := m.gridRows(), m.laneWidth()
	g := newCellGrid(rows, m.gridCols())
	spans := make(map[string]boxSpan)

	for li := range m.lanes {
		d, ok := m.days[li]
		if !ok {
			continue
		}
		x0 := li * laneW
		for _, box := range d.Boxes {
			rowTop, rowBot, colLeft, colRight, contentCols := boxCells(box, x0, laneW)
			label := box.Entry.Title
			if box.Entry.IsMilestone() {
				label = "◆ " + label
			}
			g.paint(box.Entry.ID, box.Entry.Color, label, false, rowTop, rowBot, colLeft, colRight, contentCols)
			spans[box.Entry.ID] = boxSpan{lane: li, rowTop: rowTop, rowBot: rowBot, colLeft: colLeft, colRight: colRight}
		}
	}

	// Ghost preview for an in-flight create drag. Move/resize sessions give
	// feedback through the entry itself, which is already laid out above.
	if m.session != nil && m.session.Type == gesture.Create {
		w := m.window()
		draft := m.session.Entry
		top := w.MinutesToPixels(w.TimeToMinutes(draft.Start))
		bot := w.MinutesToPixels(w.TimeToMinutes(draft.End))
		rowTop, rowBot := int(top), int(bot)
		if rowBot <= rowTop {
			rowBot = rowTop
		} else {
			rowBot--
		}
		x0 := m.sessionLane * laneW
		g.paint(ghostID, "", draft.Start+" – "+draft.End, true, rowTop, rowBot, x0, x0+laneW-1, laneW)
	}

	m.cells = g
	m.spans = spans
}

// boxCells converts a layout box's percent geometry to terminal cells within
// a lane column starting at x0.
func boxCells(box *layout.Box, x0, laneW int) (rowTop, rowBot, colLeft, colRight, contentCols int) {
	rowTop = int(box.Top)
	rowBot = int(box.Top + box.Height - 0.5)
	if rowBot < rowTop {
		rowBot = rowTop
	}

	colLeft = x0 + int(box.LeftPct/100*float64(laneW))
	width := int(box.WidthPct/100*float64(laneW) + 0.5)
	if width < 1 {
		width = 1
	}
	colRight = colLeft + width - 1

	contentCols = int(float64(width)*box.ContentWidthPct/100 + 0.5)
	if contentCols < 1 {
		contentCols = 1
	}
	return rowTop, rowBot, colLeft, colRight, contentCols
}

// hitTarget describes what is under a grid-area position.
type hitTarget struct {
	id     string // "" for empty space
	onTop  bool   // first row of the entry: resize-start handle
	onBot  bool   // last row of the entry: resize-end handle
}

// hitTest resolves a grid-area cell to the entry under it. Edge handles only
// exist on blocks tall enough to keep a body row between them.
func (m *Model) hitTest(row, col int) hitTarget {
	if m.cells == nil || !m.cells.inBounds(row, col) {
		return hitTarget{}
	}
	c := m.cells.at(row, col)
	if c.id == "" || c.id == ghostID {
		return hitTarget{}
	}
	span, ok := m.spans[c.id]
	if !ok {
		return hitTarget{id: c.id}
	}
	t := hitTarget{id: c.id}
	if span.rowBot-span.rowTop >= 2 {
		t.onTop = row == span.rowTop
		t.onBot = row == span.rowBot
	}
	return t
}
