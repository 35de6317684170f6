package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"daygrid/internal/dateutil"
	"daygrid/internal/entry"
)

// addCmd creates the "add" subcommand.
func (a *App) addCmd() *cobra.Command {
	var (
		start  string
		end    string
		lane   string
		parent string
		notes  string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an entry to a day",
		Long: `Add a time-boxed entry. Equal start and end times create a
milestone marker. With --lane the entry is assigned to the named
section; otherwise it lands in the uncategorized lane.`,
		Args: cobra.ExactArgs(1),
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
			e, err := entry.New(args[0], dateutil.FormatDate(date), start, end)
			if err != nil {
				return err
			}
			e.Notes = notes
			e.ParentID = parent

			if lane != "" {
				l, err := findLane(ctx, a, lane)
				if err != nil {
					return err
				}
				e.LaneID = l.ID
				e.Color = l.Color
			} else {
				e.Color = entry.UncategorizedLaneColor
			}

			if err := s.CreateEntry(ctx, e); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", e.Title, colorMuted.Sprint(e.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&start, "start", "s", "09:00", "Start time (HH:MM)")
	cmd.Flags().StringVarP(&end, "end", "e", "10:00", "End time (HH:MM; equal to start for a milestone)")
	cmd.Flags().StringVarP(&lane, "lane", "l", "", "Section lane name")
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent entry id (nests this entry)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

// findLane resolves a lane by exact name.
func findLane(ctx context.Context, a *App, name string) (entry.Lane, error) {
	s, err := a.ensureStore()
	if err != nil {
		return entry.Lane{}, err
	}
	lanes, err := s.Lanes(ctx)
	if err != nil {
		return entry.Lane{}, err
	}
	for _, l := range lanes {
		if l.Name == name {
			return l, nil
		}
	}
	return entry.Lane{}, fmt.Errorf("lane %q: %w", name, entry.ErrLaneNotFound)
}
