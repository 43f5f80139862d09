package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title [new title...]",
	Short: "Show or set the checklist title",
	Example: `  dailyctl title
  dailyctl title Deep Work Friday`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return titleRun(os.Stdout, strings.Join(args, " "))
	},
}

func titleRun(w io.Writer, newTitle string) error {
	if strings.TrimSpace(newTitle) != "" {
		if err := taskStore.SetTitle(strings.TrimSpace(newTitle)); err != nil {
			return fmt.Errorf("setting title: %w", err)
		}
	}

	title, err := taskStore.Title()
	if err != nil {
		return fmt.Errorf("loading title: %w", err)
	}
	fmt.Fprintln(w, title)
	return nil
}

func init() {
	rootCmd.AddCommand(titleCmd)
}
