package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <position|id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task from today's checklist",
	Example: `  dailyctl rm 2
  dailyctl rm ab12cd34`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rmRun(os.Stdout, args[0])
	},
}

func rmRun(w io.Writer, ref string) error {
	id, err := resolveTaskID(ref)
	if err != nil {
		return err
	}

	if err := taskStore.DeleteTask(id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, map[string]string{"deleted": id})
	}
	ui.FormatTaskDeleted(w, id)
	return nil
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
