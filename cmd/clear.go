package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var clearCompletedOnly bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear today's checklist",
	Long: `Clear today's checklist.

By default all tasks are removed; --completed keeps pending tasks and
removes only the completed ones.`,
	Example: `  dailyctl clear
  dailyctl clear --completed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clearRun(os.Stdout, clearCompletedOnly)
	},
}

func clearRun(w io.Writer, completedOnly bool) error {
	if completedOnly {
		if err := taskStore.ClearCompleted(); err != nil {
			return fmt.Errorf("clearing completed tasks: %w", err)
		}
		fmt.Fprintln(w, "Cleared completed tasks.")
		return nil
	}

	if err := taskStore.ClearAllTasks(); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	fmt.Fprintln(w, "Cleared all tasks.")
	return nil
}

func init() {
	clearCmd.Flags().BoolVar(&clearCompletedOnly, "completed", false, "Remove only completed tasks")
	rootCmd.AddCommand(clearCmd)
}
