package cmd

import (
	"fmt"
	"os"

	"github.com/calahan-dev/dailyctl/internal/affirm"
	"github.com/calahan-dev/dailyctl/internal/archive"
	"github.com/calahan-dev/dailyctl/internal/config"
	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/genai/ollama"
	"github.com/calahan-dev/dailyctl/internal/kv"
	"github.com/calahan-dev/dailyctl/internal/kv/file"
	"github.com/calahan-dev/dailyctl/internal/kv/sqlite"
	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/calahan-dev/dailyctl/internal/tui"
	"github.com/calahan-dev/dailyctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	backend        kv.Store
	taskStore      *store.TaskStore
	dayArchive     *archive.Archiver
	sessionMgr     *genai.Manager
	affirmSvc      *affirm.Service
)

var rootCmd = &cobra.Command{
	Use:   "dailyctl",
	Short: "A daily checklist with AI-generated affirmations",
	Long: "dailyctl is a single-user daily checklist that resets at midnight, tracks a\n" +
		"completion streak, and rewards finished tasks with an affirmation generated\n" +
		"by a local on-device model.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Override storage backend from flag
		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		// Initialize storage backend
		switch appConfig.Storage {
		case "file":
			backend, err = file.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing file storage: %w", err)
			}
		case "sqlite":
			backend, err = sqlite.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing sqlite storage: %w", err)
			}
		default:
			return fmt.Errorf("unknown storage backend: %s", appConfig.Storage)
		}

		dayArchive, err = archive.New(appConfig.DataDir)
		if err != nil {
			return fmt.Errorf("initializing archive: %w", err)
		}
		taskStore = store.New(backend, store.WithArchiver(dayArchive))

		runtime := ollama.New(appConfig.Model.Endpoint)
		sessionMgr = genai.NewManager(runtime, appConfig.ModelOptions(),
			genai.WithActivationCheck(activationCheck))
		affirmSvc = affirm.NewService(sessionMgr)

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: fall back to today's checklist
			return listRun(os.Stdout)
		}
		return tui.Run(tui.Config{
			Store:    taskStore,
			Service:  affirmSvc,
			Manager:  sessionMgr,
			Icons:    icons(),
			Theme:    appConfig.UI.Theme,
			MaxWidth: appConfig.UI.MaxWidth,
		})
	},
}

// activationCheck is the user-presence precondition for model downloads: an
// interactive terminal, or explicit standing consent from the config.
func activationCheck() bool {
	if appConfig != nil && appConfig.Model.AutoDownload {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func icons() ui.Icons {
	if appConfig == nil {
		return ui.DefaultIcons()
	}
	return ui.Icons{
		Done:    appConfig.UI.DoneIcon,
		Pending: appConfig.UI.PendingIcon,
		Streak:  appConfig.UI.StreakIcon,
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (file|sqlite)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
