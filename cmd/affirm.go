package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var affirmCmd = &cobra.Command{
	Use:   "affirm",
	Short: "Generate an affirmation for today's completed tasks",
	Long: `Generate an affirmation for today's completed tasks.

The on-device model produces a short, personalized message. When the
model is unavailable a pre-written affirmation is shown instead; the
checklist itself is never blocked by the AI subsystem.`,
	Example: `  dailyctl affirm
  dailyctl affirm --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return affirmRun(cmd.Context(), os.Stdout)
	},
}

func affirmRun(ctx context.Context, w io.Writer) error {
	completed, err := taskStore.CompletedTasks()
	if err != nil {
		return fmt.Errorf("loading completed tasks: %w", err)
	}

	res := affirmSvc.GenerateAffirmation(ctx, completed)

	if jsonOutput {
		return ui.FormatJSON(w, res)
	}
	ui.FormatAffirmation(w, res, appConfig.UI.MaxWidth, appConfig.UI.Theme)
	return nil
}

func init() {
	rootCmd.AddCommand(affirmCmd)
}
