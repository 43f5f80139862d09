package mcptools_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/calahan-dev/dailyctl/internal/affirm"
	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/kv/file"
	"github.com/calahan-dev/dailyctl/internal/mcptools"
	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestStore(t *testing.T) *store.TaskStore {
	t.Helper()
	backend, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	fixed := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	return store.New(backend, store.WithNow(func() time.Time { return fixed }))
}

func connect(t *testing.T, s *store.TaskStore, svc *affirm.Service) *mcp.ClientSession {
	t.Helper()
	_, clientTransport := mcptools.NewChecklistMCPServer(s, svc)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	if err != nil {
		t.Fatalf("failed to connect client: %v", err)
	}
	return session
}

func unmarshalResult(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()
	if result.StructuredContent == nil {
		t.Fatal("expected structured content in result")
	}
	data, _ := json.Marshal(result.StructuredContent)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
}

func TestMCPServer_TaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	session := connect(t, s, nil)

	var added mcptools.AddTaskOutput
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "add_task",
		Arguments: mcptools.AddTaskInput{Text: "Write release notes"},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	unmarshalResult(t, result, &added)
	if added.Task.ID == "" {
		t.Error("expected non-empty task ID")
	}
	if added.Task.Completed {
		t.Error("new task should start pending")
	}

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "toggle_task",
		Arguments: mcptools.ToggleTaskInput{ID: added.Task.ID},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	var toggled mcptools.ToggleTaskOutput
	unmarshalResult(t, result, &toggled)
	if !toggled.Task.Completed {
		t.Error("expected task to be completed after toggle")
	}
	if !toggled.IsFirstCompletion {
		t.Error("expected first completion flag on the initial toggle")
	}

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_tasks",
		Arguments: mcptools.ListTasksInput{},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	var listed mcptools.ListTasksOutput
	unmarshalResult(t, result, &listed)
	if listed.Total != 1 || listed.Completed != 1 {
		t.Errorf("expected 1/1 completed, got %d/%d", listed.Completed, listed.Total)
	}
	if listed.Date != "2026-09-01" {
		t.Errorf("date = %q, want 2026-09-01", listed.Date)
	}

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_streak",
		Arguments: mcptools.GetStreakInput{},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	var streak mcptools.GetStreakOutput
	unmarshalResult(t, result, &streak)
	if streak.Count != 1 {
		t.Errorf("streak = %d, want 1", streak.Count)
	}

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "delete_task",
		Arguments: mcptools.DeleteTaskInput{ID: added.Task.ID},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	var deleted mcptools.DeleteTaskOutput
	unmarshalResult(t, result, &deleted)
	if deleted.Deleted != added.Task.ID {
		t.Errorf("deleted = %q, want %q", deleted.Deleted, added.Task.ID)
	}
}

func TestMCPServer_RejectsBadInput(t *testing.T) {
	s := newTestStore(t)
	session := connect(t, s, nil)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "add_task",
		Arguments: mcptools.AddTaskInput{Text: "   "},
	})
	if err != nil {
		t.Fatalf("CallTool returned unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected IsError for blank task text")
	}

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "toggle_task",
		Arguments: mcptools.ToggleTaskInput{ID: "missing99"},
	})
	if err != nil {
		t.Fatalf("CallTool returned unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected IsError for unknown task ID")
	}
}

type fixedSession struct{ reply string }

func (s fixedSession) Summarize(ctx context.Context, prompt, promptContext string) (string, error) {
	return s.reply, nil
}
func (s fixedSession) Destroy() error { return nil }

type fixedRuntime struct{ reply string }

func (r fixedRuntime) Availability(ctx context.Context, opts genai.Options) (genai.Availability, error) {
	return genai.AvailabilityReadily, nil
}

func (r fixedRuntime) Create(ctx context.Context, opts genai.Options, progress func(pct float64)) (genai.Session, error) {
	return fixedSession{reply: r.reply}, nil
}

func TestMCPServer_GenerateAffirmation(t *testing.T) {
	s := newTestStore(t)
	mgr := genai.NewManager(fixedRuntime{reply: "You did great today!"}, genai.Options{Model: "test"})
	session := connect(t, s, affirm.NewService(mgr))

	if _, err := s.AddTask("Ship the build"); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "generate_affirmation",
		Arguments: mcptools.GenerateAffirmationInput{},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	var out mcptools.GenerateAffirmationOutput
	unmarshalResult(t, result, &out)
	if out.Text != "You did great today!" {
		t.Errorf("text = %q, want model reply", out.Text)
	}
	if out.IsUsingFallback {
		t.Error("expected a model-generated affirmation, not fallback")
	}
	if out.Status != affirm.StatusSuccess {
		t.Errorf("status = %q, want %q", out.Status, affirm.StatusSuccess)
	}
}
