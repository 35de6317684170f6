package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"daygrid/internal/config"
)

// configCmd creates the "config" subcommand.
func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := a.config
			fmt.Println(colorHeader.Sprint("Window"))
			fmt.Printf("  start_hour:   %d\n", cfg.Window.StartHour)
			fmt.Printf("  end_hour:     %d\n", cfg.Window.EndHour)
			fmt.Printf("  grid_minutes: %d\n", cfg.Window.GridMinutes)
			fmt.Println(colorHeader.Sprint("Storage"))
			fmt.Printf("  db_path: %s\n", cfg.Storage.DBPath)
			fmt.Println(colorHeader.Sprint("UI"))
			fmt.Printf("  theme: %s\n", cfg.UI.Theme)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if err := config.Default().SaveTo(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}
