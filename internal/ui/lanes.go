package ui

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"daygrid/internal/entry"
)

// lanesCmd creates the "lanes" subcommand and its children.
func (a *App) lanesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Manage section lanes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.ensureStore()
			if err != nil {
				return err
			}
			lanes, err := s.Lanes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(colorHeader.Sprint("Lanes"))
			for _, l := range lanes {
				fmt.Printf("  %s  %s %s\n",
					colorLane.Sprint(l.Name),
					colorMuted.Sprint(l.Color),
					colorMuted.Sprint(l.ID))
			}
			fmt.Printf("  %s  %s\n",
				colorLane.Sprint(entry.UncategorizedLane().Name),
				colorMuted.Sprint(entry.UncategorizedLaneColor))
			return nil
		},
	}

	cmd.AddCommand(a.lanesAddCmd())
	cmd.AddCommand(a.lanesRemoveCmd())
	return cmd
}

func (a *App) lanesAddCmd() *cobra.Command {
	var laneColor string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a lane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.ensureStore()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			lanes, err := s.Lanes(ctx)
			if err != nil {
				return err
			}
			for _, l := range lanes {
				if l.Name == args[0] {
					return fmt.Errorf("lane %q already exists", args[0])
				}
			}

			l := entry.Lane{
				ID:    uuid.NewString(),
				Name:  args[0],
				Order: len(lanes),
				Color: laneColor,
			}
			if err := s.SaveLane(ctx, &l); err != nil {
				return err
			}
			fmt.Printf("Added lane %s\n", colorLane.Sprint(l.Name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&laneColor, "color", "c", "#89b4fa", "Lane color (hex)")
	return cmd
}

func (a *App) lanesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a lane (its entries become uncategorized)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := findLane(ctx, a, args[0])
			if err != nil {
				return err
			}
			s, err := a.ensureStore()
			if err != nil {
				return err
			}
			if err := s.DeleteLane(ctx, l.ID); err != nil {
				return err
			}
			fmt.Printf("Removed lane %s\n", colorLane.Sprint(l.Name))
			return nil
		},
	}
}
