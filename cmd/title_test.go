package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestTitleShowsDefault(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := titleRun(&buf, ""); err != nil {
		t.Fatalf("titleRun: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "To-do List" {
		t.Errorf("title = %q, want default", got)
	}
}

func TestTitleSetAndShow(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := titleRun(&buf, "Deep Work Friday"); err != nil {
		t.Fatalf("titleRun: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "Deep Work Friday" {
		t.Errorf("title = %q, want new value", got)
	}

	// Survives a fresh read
	buf.Reset()
	if err := titleRun(&buf, ""); err != nil {
		t.Fatalf("titleRun: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "Deep Work Friday" {
		t.Errorf("persisted title = %q", got)
	}
}
