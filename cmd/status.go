package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress, streak, and model availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun(os.Stdout)
	},
}

func statusRun(w io.Writer) error {
	p, err := taskStore.Progress()
	if err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}
	streak, err := taskStore.Streak()
	if err != nil {
		return fmt.Errorf("loading streak: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	avail := sessionMgr.CheckAvailability(ctx)

	if jsonOutput {
		return ui.FormatJSON(w, map[string]interface{}{
			"progress": p,
			"streak":   streak,
			"model":    string(avail),
		})
	}

	ui.FormatProgress(w, p)
	ui.FormatStreak(w, streak, icons())
	ui.FormatAvailability(w, avail)
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
