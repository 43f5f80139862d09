package cmd

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/calahan-dev/dailyctl/internal/affirm"
	"github.com/calahan-dev/dailyctl/internal/archive"
	"github.com/calahan-dev/dailyctl/internal/config"
	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/kv/file"
	"github.com/calahan-dev/dailyctl/internal/store"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

type stubSession struct{}

func (stubSession) Summarize(ctx context.Context, prompt, promptContext string) (string, error) {
	return "You're doing great!", nil
}
func (stubSession) Destroy() error { return nil }

type stubRuntime struct{}

func (stubRuntime) Availability(ctx context.Context, opts genai.Options) (genai.Availability, error) {
	return genai.AvailabilityReadily, nil
}

func (stubRuntime) Create(ctx context.Context, opts genai.Options, progress func(pct float64)) (genai.Session, error) {
	return stubSession{}, nil
}

// setupTestEnv wires the package-level collaborators the commands use,
// backed by a throwaway data directory and a stubbed model runtime. The
// clock is pinned to 2026-09-01.
func setupTestEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	backend, err := file.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	arch, err := archive.New(dir)
	if err != nil {
		t.Fatalf("creating test archive: %v", err)
	}
	dayArchive = arch

	fixed := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	taskStore = store.New(backend,
		store.WithNow(func() time.Time { return fixed }),
		store.WithArchiver(arch),
	)

	sessionMgr = genai.NewManager(stubRuntime{}, genai.Options{Model: "test"})
	affirmSvc = affirm.NewService(sessionMgr)

	appConfig = &config.Config{
		Storage: "file",
		DataDir: dir,
		UI: config.UIConfig{
			DoneIcon:    "✓",
			PendingIcon: "○",
			StreakIcon:  "🔥",
			Theme:       "dark",
			MaxWidth:    80,
		},
	}
	jsonOutput = false
	doneNoAffirm = false
	clearCompletedOnly = false
	historyLimit = 0
}
