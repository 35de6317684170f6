package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daygrid/internal/config"
	"daygrid/internal/entry"
	"daygrid/internal/gesture"
	"daygrid/internal/layout"
	"daygrid/internal/store"
	"daygrid/internal/timegrid"
	"daygrid/internal/tui/theme"
)

// Chrome dimensions around the grid area.
const (
	rulerWidth  = 7 // "HH:MM  "
	headerLines = 2 // title + lane headers
	footerLines = 1 // status line
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditor      // editor modal open; grid input suspended
)

// boxSpan records where an entry was painted, for mouse hit testing.
type boxSpan struct {
	lane     int
	rowTop   int
	rowBot   int // inclusive
	colLeft  int
	colRight int // inclusive
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store  *store.Store
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	date    time.Time
	entries []*entry.Entry
	lanes   []entry.Lane // persisted lanes plus the synthetic uncategorized lane
	mode    Mode
	loading bool

	// Derived layout (fully recomputed on every input change)
	days  map[int]*layout.Day // lane index -> layout
	flat  bool                // some lane fell back to the flat layout
	cells *cellGrid
	spans map[string]boxSpan

	// The single active drag. Nil outside pointer-down..pointer-up.
	session     *gesture.Session
	sessionLane int

	// Editor modal state
	editorTitle  textinput.Model
	editorEntry  *entry.Entry
	editorIsNew  bool
	editorSource gesture.Type

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// New creates a new TUI model for the given date.
func New(s *store.Store, cfg *config.Config, date time.Time) (*Model, error) {
	th, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 120

	return &Model{
		store:       s,
		config:      cfg,
		theme:       th,
		styles:      NewStyles(th),
		date:        date,
		lanes:       []entry.Lane{entry.UncategorizedLane()},
		loading:     true,
		editorTitle: ti,
	}, nil
}

// Init loads the initial day.
func (m Model) Init() tea.Cmd {
	return m.loadDayCmd()
}

// Run starts the TUI program.
func Run(s *store.Store, cfg *config.Config, date time.Time) error {
	m, err := New(s, cfg, date)
	if err != nil {
		return err
	}
	p := tea.NewProgram(*m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

// gridRows returns the number of terminal rows available to the time axis.
func (m *Model) gridRows() int {
	rows := m.height - headerLines - footerLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

// gridCols returns the number of terminal columns available to the lanes.
func (m *Model) gridCols() int {
	cols := m.width - rulerWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// laneWidth returns the column width of one lane.
func (m *Model) laneWidth() int {
	w := m.gridCols() / len(m.lanes)
	if w < 1 {
		w = 1
	}
	return w
}

// window builds the time grid mapper from settings and the current terminal
// size. Terminal rows play the role of pixels.
func (m *Model) window() timegrid.Window {
	return timegrid.Window{
		StartHour:   m.config.Window.StartHour,
		EndHour:     m.config.Window.EndHour,
		HeightPx:    float64(m.gridRows()),
		GridMinutes: m.config.Window.GridMinutes,
	}
}

// gestureConfig builds the controller configuration for the current grid.
func (m *Model) gestureConfig() gesture.Config {
	return gesture.Config{
		Window: m.window(),
		LaneAt: func(x float64) entry.Lane {
			return m.lanes[m.laneIndexAt(int(x))]
		},
	}
}

// laneIndexAt maps a grid-area column to a lane index.
func (m *Model) laneIndexAt(col int) int {
	idx := col / m.laneWidth()
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.lanes) {
		idx = len(m.lanes) - 1
	}
	return idx
}

// laneIndexByID maps a lane id to its index, falling back to the
// uncategorized lane.
func (m *Model) laneIndexByID(id string) int {
	for i, l := range m.lanes {
		if l.ID == id {
			return i
		}
	}
	return len(m.lanes) - 1 // uncategorized is always last
}

// setLanes installs the persisted lanes plus the synthetic uncategorized one.
func (m *Model) setLanes(lanes []entry.Lane) {
	m.lanes = append(append([]entry.Lane{}, lanes...), entry.UncategorizedLane())
}

// rootLaneIndex resolves the lane column an entry is rendered in: the lane
// of its root ancestor, so subtrees stay together even when a child carries
// a different category.
func (m *Model) rootLaneIndex(e *entry.Entry, byID map[string]*entry.Entry) int {
	seen := 0
	for e.ParentID != "" && seen <= len(byID) {
		p, ok := byID[e.ParentID]
		if !ok {
			break
		}
		e = p
		seen++
	}
	return m.laneIndexByID(e.LaneID)
}

// relayout recomputes the full layout and the render/hit buffers from the
// current entry set, window settings, and terminal size. The layout result
// is never patched incrementally.
func (m *Model) relayout() {
	w := m.window()

	byID := make(map[string]*entry.Entry, len(m.entries))
	for _, e := range m.entries {
		byID[e.ID] = e
	}
	groups := make(map[int][]*entry.Entry)
	for _, e := range m.entries {
		li := m.rootLaneIndex(e, byID)
		groups[li] = append(groups[li], e)
	}

	m.days = make(map[int]*layout.Day, len(groups))
	m.flat = false
	for li, group := range groups {
		d, err := layout.LayoutDay(group, w)
		if err != nil {
			// Structural problem in this lane's subtree: render it unnested
			// instead of failing the whole day.
			d = layout.LayoutDayFlat(group, w)
			m.flat = true
		}
		m.days[li] = d
	}

	m.buildCells()
}
