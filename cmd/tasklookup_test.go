package cmd

import "testing"

func TestResolveTaskIDByPosition(t *testing.T) {
	setupTestEnv(t)
	first, _ := taskStore.AddTask("first")
	second, _ := taskStore.AddTask("second")

	id, err := resolveTaskID("1")
	if err != nil {
		t.Fatalf("resolveTaskID(1): %v", err)
	}
	if id != first.ID {
		t.Errorf("position 1 = %q, want %q", id, first.ID)
	}

	id, err = resolveTaskID("2")
	if err != nil {
		t.Fatalf("resolveTaskID(2): %v", err)
	}
	if id != second.ID {
		t.Errorf("position 2 = %q, want %q", id, second.ID)
	}
}

func TestResolveTaskIDPassthrough(t *testing.T) {
	setupTestEnv(t)

	id, err := resolveTaskID("ab12cd34")
	if err != nil {
		t.Fatalf("resolveTaskID: %v", err)
	}
	if id != "ab12cd34" {
		t.Errorf("id = %q, want passthrough", id)
	}
}

func TestResolveTaskIDErrors(t *testing.T) {
	setupTestEnv(t)
	if _, err := taskStore.AddTask("only"); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if _, err := resolveTaskID("0"); err == nil {
		t.Error("expected error for position 0")
	}
	if _, err := resolveTaskID("2"); err == nil {
		t.Error("expected error for out-of-range position")
	}
	if _, err := resolveTaskID("UPPERCASE"); err == nil {
		t.Error("expected error for malformed ID")
	}
}
