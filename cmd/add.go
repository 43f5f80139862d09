package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a task to today's checklist",
	Long: `Add a task to today's checklist.

The task is appended to the end of the list and resets at midnight.`,
	Example: `  dailyctl add "Write spec"
  dailyctl add buy groceries
  echo "task from pipe" | dailyctl add -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string

		switch {
		case len(args) == 1 && args[0] == "-":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = strings.TrimSpace(string(data))
		case len(args) > 0:
			text = strings.Join(args, " ")
		default:
			return fmt.Errorf("add requires text: dailyctl add \"some task\"")
		}

		return addRun(os.Stdout, text)
	},
}

func addRun(w io.Writer, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("add: empty task text")
	}

	t, err := taskStore.AddTask(text)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, t)
	}
	ui.FormatTaskAdded(w, t)
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
}
