// Package ui provides the command line interface for daygrid.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"daygrid/internal/config"
	"daygrid/internal/dateutil"
	"daygrid/internal/store"
	"daygrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *store.Store
	config *config.Config
	root   *cobra.Command

	dateFlag string
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "daygrid",
		Short: "A day timeline with drag-to-schedule entries",
		Long: `Daygrid renders one day of time-boxed entries as a timeline of
section lanes and lets you create, move, and resize entries by
dragging them with the mouse.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			date, err := dateutil.ParseRelativeDate(a.dateFlag, time.Now())
			if err != nil {
				return err
			}
			s, err := a.ensureStore()
			if err != nil {
				return err
			}
			return tui.Run(s, a.config, date)
		},
	}

	a.root.PersistentFlags().StringVarP(&a.dateFlag, "date", "d", "", "Date to open (YYYY-MM-DD, today, tomorrow, a weekday)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.lanesCmd())
	a.root.AddCommand(a.deleteCmd())

	return a
}

// ensureStore opens the database on first use.
func (a *App) ensureStore() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if err := os.MkdirAll(filepath.Dir(a.config.Storage.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	s, err := store.Open(a.config.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("daygrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases application resources.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
