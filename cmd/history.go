package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [date]",
	Short: "Browse archived days",
	Long: `Browse archived days.

Without arguments, lists every archived day with its completion counts
and the streak as of that day. With a date (YYYY-MM-DD), shows the full
checklist archived for that day.`,
	Example: `  dailyctl history
  dailyctl history 2026-08-31`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return historyDayRun(os.Stdout, args[0])
		}
		return historyRun(os.Stdout)
	},
}

func historyRun(w io.Writer) error {
	days, err := dayArchive.ListDays()
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}
	if historyLimit > 0 && len(days) > historyLimit {
		days = days[:historyLimit]
	}
	if jsonOutput {
		return ui.FormatJSON(w, days)
	}
	ui.FormatHistory(w, days, icons())
	return nil
}

func historyDayRun(w io.Writer, date string) error {
	day, err := dayArchive.ReadDay(date)
	if err != nil {
		return fmt.Errorf("reading history for %s: %w", date, err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, day)
	}
	ui.FormatTaskList(w, "Archive", store.TaskSet{Date: day.Date, Items: day.Items}, icons())
	fmt.Fprintf(w, "\n%d/%d completed", day.Completed, day.Total)
	if day.Streak > 0 {
		fmt.Fprintf(w, "  %s %d", icons().Streak, day.Streak)
	}
	fmt.Fprintln(w)
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "show at most this many days (0 = all)")
	rootCmd.AddCommand(historyCmd)
}
