package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
)

var modelWarmWait time.Duration

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect and manage the on-device model",
}

var modelStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check model availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
		defer cancel()

		avail := sessionMgr.CheckAvailability(ctx)
		if jsonOutput {
			return ui.FormatJSON(os.Stdout, map[string]string{"availability": string(avail)})
		}
		ui.FormatAvailability(os.Stdout, avail)
		return nil
	},
}

var modelWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Create the model session, downloading the model if needed",
	Long: `Create the model session, downloading the model if needed.

Download progress is printed as it streams in. Creation is attempted
once; if the model is still downloading in the background afterwards,
availability is polled every 5 seconds until ready or until --wait
elapses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return modelWarmRun(cmd.Context(), os.Stdout)
	},
}

var modelUnloadCmd = &cobra.Command{
	Use:   "unload",
	Short: "Tear down the model session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionMgr.DestroySession()
		fmt.Fprintln(os.Stdout, "Session released.")
		return nil
	},
}

func modelWarmRun(ctx context.Context, w io.Writer) error {
	avail := sessionMgr.CheckAvailability(ctx)
	if avail == genai.AvailabilityNo {
		ui.FormatAvailability(w, avail)
		return nil
	}

	events := sessionMgr.Subscribe()
	done := make(chan error, 1)
	go func() {
		_, err := sessionMgr.InitSession(ctx)
		done <- err
	}()

	for {
		select {
		case e := <-events:
			switch e.Kind {
			case genai.EventDownloading:
				fmt.Fprintf(w, "\r%s", ui.ProgressBar(e.Progress, 30))
			case genai.EventTimeout:
				fmt.Fprintf(w, "\nStill working after 30s; the download may be large.\n")
			}
		case err := <-done:
			fmt.Fprintln(w)
			if err != nil {
				// Creation failed outright; report what polling sees.
				res := sessionMgr.PollForAvailability(ctx, modelWarmWait)
				ui.FormatPollResult(w, res)
				return fmt.Errorf("warming model: %w", err)
			}
			fmt.Fprintln(w, "Model session ready.")
			return nil
		}
	}
}

func init() {
	modelWarmCmd.Flags().DurationVar(&modelWarmWait, "wait", genai.DefaultPollBudget,
		"How long to wait for the model to become available")
	modelCmd.AddCommand(modelStatusCmd)
	modelCmd.AddCommand(modelWarmCmd)
	modelCmd.AddCommand(modelUnloadCmd)
	rootCmd.AddCommand(modelCmd)
}
