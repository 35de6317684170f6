package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"daygrid/internal/dateutil"
	"daygrid/internal/entry"
)

// listCmd creates the "list" subcommand.
func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List a day's entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.ensureStore()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			date, err := dateutil.ParseRelativeDate(a.dateFlag, time.Now())
			if err != nil {
				return err
			}
			entries, err := s.EntriesByDate(ctx, date)
			if err != nil {
				return err
			}
			lanes, err := s.Lanes(ctx)
			if err != nil {
				return err
			}

			fmt.Println(colorHeader.Sprint(date.Format("Monday 2006-01-02")))
			if len(entries) == 0 {
				fmt.Println(colorMuted.Sprint("  (no entries)"))
				return nil
			}

			laneNames := make(map[string]string, len(lanes))
			for _, l := range lanes {
				laneNames[l.ID] = l.Name
			}
			byID := make(map[string]*entry.Entry, len(entries))
			for _, e := range entries {
				byID[e.ID] = e
			}

			sorted := make([]*entry.Entry, len(entries))
			copy(sorted, entries)
			entry.SortForDisplay(sorted)

			width := termWidth()
			for _, e := range sorted {
				printEntry(e, byID, laneNames, width)
			}
			return nil
		},
	}
}

// printEntry renders one list line, indented by effective nesting level.
func printEntry(e *entry.Entry, byID map[string]*entry.Entry, laneNames map[string]string, width int) {
	indent := strings.Repeat("  ", nestingLevel(e, byID))

	var span string
	if e.IsMilestone() {
		span = colorMilestone.Sprintf("%s      ◆", e.Start)
	} else {
		span = colorTime.Sprintf("%s-%s", e.Start, e.End)
	}

	laneName := laneNames[e.LaneID]
	if laneName == "" {
		laneName = entry.UncategorizedLane().Name
	}

	line := fmt.Sprintf("  %s %s%s  %s %s", span, indent, e.Title,
		colorLane.Sprint("["+laneName+"]"), colorMuted.Sprint(e.ID))
	if len(line) > width {
		line = line[:width]
	}
	fmt.Println(line)
}

// nestingLevel walks the parent chain within the loaded set. A dangling or
// cyclic chain stops at the set size, matching the layout fallback.
func nestingLevel(e *entry.Entry, byID map[string]*entry.Entry) int {
	level := 0
	for e.ParentID != "" && level <= len(byID) {
		p, ok := byID[e.ParentID]
		if !ok {
			break
		}
		e = p
		level++
	}
	return level
}
