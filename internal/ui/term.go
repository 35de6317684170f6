package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI output.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Times: cyan so the schedule column pops
	colorTime = color.New(color.FgCyan)

	// Milestones: yellow point markers
	colorMilestone = color.New(color.FgYellow)

	// Muted: ids, secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Lanes: green section names
	colorLane = color.New(color.FgGreen)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}
