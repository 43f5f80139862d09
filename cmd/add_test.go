package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/calahan-dev/dailyctl/internal/task"
)

func TestAddAppendsTask(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := addRun(&buf, "Write release notes"); err != nil {
		t.Fatalf("addRun: %v", err)
	}

	out := stripANSI(buf.String())
	if !strings.Contains(out, "Write release notes") {
		t.Errorf("output missing task text: %q", out)
	}

	ts, err := taskStore.GetTodaysTasks()
	if err != nil {
		t.Fatalf("GetTodaysTasks: %v", err)
	}
	if len(ts.Items) != 1 {
		t.Fatalf("expected 1 task, got %d", len(ts.Items))
	}
	if err := task.ValidateID(ts.Items[0].ID); err != nil {
		t.Errorf("generated ID %q invalid: %v", ts.Items[0].ID, err)
	}
}

func TestAddRejectsBlankText(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := addRun(&buf, "   "); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestAddJSONOutput(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	if err := addRun(&buf, "Ship it"); err != nil {
		t.Fatalf("addRun: %v", err)
	}

	var got task.Task
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if got.Text != "Ship it" || got.Completed {
		t.Errorf("got %+v, want pending 'Ship it'", got)
	}
}
