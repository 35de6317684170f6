package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"daygrid/internal/entry"
)

// deleteCmd creates the "delete" subcommand.
func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry (children are re-attached to its parent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.ensureStore()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			e, err := s.GetEntry(ctx, args[0])
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("entry %q: %w", args[0], entry.ErrEntryNotFound)
			}
			if err := s.DeleteEntry(ctx, e.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", e.Title)
			return nil
		},
	}
}
