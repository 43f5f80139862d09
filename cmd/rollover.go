package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Reset the checklist for a new day",
	Long: `Reset the checklist for a new day.

Intended to be run by a scheduler (cron, systemd timer) at local
midnight. The outgoing day is archived first. This is belt-and-
suspenders: every read already performs the same rollover lazily, so
correctness does not depend on the scheduler firing.`,
	Example: `  # crontab entry
  0 0 * * * dailyctl rollover`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rolloverRun(os.Stdout)
	},
}

func rolloverRun(w io.Writer) error {
	if err := taskStore.ResetForNewDay(); err != nil {
		return fmt.Errorf("resetting for new day: %w", err)
	}
	fmt.Fprintln(w, "Checklist reset for a new day.")
	return nil
}

func init() {
	rootCmd.AddCommand(rolloverCmd)
}
