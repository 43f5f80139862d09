package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show today's checklist",
	Long: `Show today's checklist.

If the stored list belongs to a previous day it is rolled over (archived
and cleared) before being shown.`,
	Example: `  dailyctl list
  dailyctl list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(os.Stdout)
	},
}

func listRun(w io.Writer) error {
	ts, err := taskStore.GetTodaysTasks()
	if err != nil {
		return fmt.Errorf("loading today's tasks: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ts)
	}

	title, err := taskStore.Title()
	if err != nil {
		return fmt.Errorf("loading list title: %w", err)
	}

	ui.FormatTaskList(w, title, ts, icons())

	p, err := taskStore.Progress()
	if err != nil {
		return err
	}
	if p.Total > 0 {
		fmt.Fprintln(w)
		ui.FormatProgress(w, p)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
