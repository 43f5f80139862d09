package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current completion streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return streakRun(os.Stdout)
	},
}

func streakRun(w io.Writer) error {
	// Resolve rollover first so a stale streak from a skipped day is not
	// reported as current.
	if _, err := taskStore.GetTodaysTasks(); err != nil {
		return fmt.Errorf("loading today's tasks: %w", err)
	}

	streak, err := taskStore.Streak()
	if err != nil {
		return fmt.Errorf("loading streak: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, map[string]int{"streak": streak})
	}
	ui.FormatStreak(w, streak, icons())
	return nil
}

func init() {
	rootCmd.AddCommand(streakCmd)
}
