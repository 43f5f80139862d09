package cmd

import (
	"bytes"
	"testing"
)

func TestClearAll(t *testing.T) {
	setupTestEnv(t)
	for _, text := range []string{"a", "b"} {
		if _, err := taskStore.AddTask(text); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := clearRun(&buf, false); err != nil {
		t.Fatalf("clearRun: %v", err)
	}

	ts, _ := taskStore.GetTodaysTasks()
	if len(ts.Items) != 0 {
		t.Errorf("expected empty list, got %d tasks", len(ts.Items))
	}
	if ts.Date != "2026-09-01" {
		t.Errorf("clear must not change the list date, got %q", ts.Date)
	}
}

func TestClearCompletedOnly(t *testing.T) {
	setupTestEnv(t)
	a, _ := taskStore.AddTask("keep me")
	b, _ := taskStore.AddTask("drop me")
	if _, err := taskStore.ToggleTask(b.ID); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}

	var buf bytes.Buffer
	if err := clearRun(&buf, true); err != nil {
		t.Fatalf("clearRun: %v", err)
	}

	ts, _ := taskStore.GetTodaysTasks()
	if len(ts.Items) != 1 || ts.Items[0].ID != a.ID {
		t.Errorf("expected only pending task %s to remain, got %+v", a.ID, ts.Items)
	}
}
