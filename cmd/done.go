package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var doneNoAffirm bool

var doneCmd = &cobra.Command{
	Use:     "done <position|id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task's completion state",
	Long: `Toggle a task's completion state.

Completing the first task of the day credits the streak. The first
completion also asks the on-device model for an affirmation; pass
--no-affirm to skip it.`,
	Example: `  dailyctl done 1
  dailyctl done ab12cd34
  dailyctl done 2 --no-affirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doneRun(os.Stdout, args[0])
	},
}

func doneRun(w io.Writer, ref string) error {
	id, err := resolveTaskID(ref)
	if err != nil {
		return err
	}

	res, err := taskStore.ToggleTask(id)
	if err != nil {
		return fmt.Errorf("toggling task: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, map[string]interface{}{
			"task":              res.Task,
			"isFirstCompletion": res.IsFirstCompletion,
		})
	}

	ui.FormatTaskToggled(w, res)

	// The affirmation rides on the first completion of the day, as a
	// reward. Failures never block the toggle: the service maps every
	// model error to fallback text.
	if res.IsFirstCompletion && !doneNoAffirm {
		completed, err := taskStore.CompletedTasks()
		if err != nil {
			return err
		}
		result := affirmSvc.GenerateAffirmation(context.Background(), completed)
		fmt.Fprintln(w)
		ui.FormatAffirmation(w, result, appConfig.UI.MaxWidth, appConfig.UI.Theme)
	}
	return nil
}

func init() {
	doneCmd.Flags().BoolVar(&doneNoAffirm, "no-affirm", false, "Skip the affirmation on first completion")
	rootCmd.AddCommand(doneCmd)
}
