package mcptools

import (
	"context"

	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/calahan-dev/dailyctl/internal/task"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func toResult(t task.Task) TaskResult {
	return TaskResult{ID: t.ID, Text: t.Text, Completed: t.Completed}
}

// ListTasksHandler returns the handler function for the list_tasks MCP tool.
func ListTasksHandler(s *store.TaskStore) func(ctx context.Context, req *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
		ts, err := s.GetTodaysTasks()
		if err != nil {
			return nil, ListTasksOutput{}, err
		}
		title, err := s.Title()
		if err != nil {
			return nil, ListTasksOutput{}, err
		}

		out := ListTasksOutput{Title: title, Date: ts.Date, Total: len(ts.Items)}
		for _, t := range ts.Items {
			if t.Completed {
				out.Completed++
			}
			if input.CompletedOnly && !t.Completed {
				continue
			}
			out.Tasks = append(out.Tasks, toResult(t))
		}
		return nil, out, nil
	}
}

// AddTaskHandler returns the handler function for the add_task MCP tool.
func AddTaskHandler(s *store.TaskStore) func(ctx context.Context, req *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, AddTaskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, AddTaskOutput, error) {
		t, err := s.AddTask(input.Text)
		if err != nil {
			return nil, AddTaskOutput{}, err
		}
		return nil, AddTaskOutput{Task: toResult(t)}, nil
	}
}

// ToggleTaskHandler returns the handler function for the toggle_task MCP tool.
func ToggleTaskHandler(s *store.TaskStore) func(ctx context.Context, req *mcp.CallToolRequest, input ToggleTaskInput) (*mcp.CallToolResult, ToggleTaskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ToggleTaskInput) (*mcp.CallToolResult, ToggleTaskOutput, error) {
		res, err := s.ToggleTask(input.ID)
		if err != nil {
			return nil, ToggleTaskOutput{}, err
		}
		return nil, ToggleTaskOutput{
			Task:              toResult(res.Task),
			IsFirstCompletion: res.IsFirstCompletion,
		}, nil
	}
}

// DeleteTaskHandler returns the handler function for the delete_task MCP tool.
func DeleteTaskHandler(s *store.TaskStore) func(ctx context.Context, req *mcp.CallToolRequest, input DeleteTaskInput) (*mcp.CallToolResult, DeleteTaskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteTaskInput) (*mcp.CallToolResult, DeleteTaskOutput, error) {
		if err := task.ValidateID(input.ID); err != nil {
			return nil, DeleteTaskOutput{}, err
		}
		if err := s.DeleteTask(input.ID); err != nil {
			return nil, DeleteTaskOutput{}, err
		}
		return nil, DeleteTaskOutput{Deleted: input.ID}, nil
	}
}

// GetStreakHandler returns the handler function for the get_streak MCP tool.
func GetStreakHandler(s *store.TaskStore) func(ctx context.Context, req *mcp.CallToolRequest, input GetStreakInput) (*mcp.CallToolResult, GetStreakOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetStreakInput) (*mcp.CallToolResult, GetStreakOutput, error) {
		// Resolve any pending rollover so a stale streak is not reported.
		if _, err := s.GetTodaysTasks(); err != nil {
			return nil, GetStreakOutput{}, err
		}
		count, err := s.Streak()
		if err != nil {
			return nil, GetStreakOutput{}, err
		}
		return nil, GetStreakOutput{Count: count}, nil
	}
}
