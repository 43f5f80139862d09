package mcptools

import (
	"context"

	"github.com/calahan-dev/dailyctl/internal/affirm"
	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewChecklistMCPServer creates an in-memory MCP server exposing checklist tools.
// Returns the server and a client transport for connecting to it.
func NewChecklistMCPServer(s *store.TaskStore, svc *affirm.Service) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(s, svc)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered checklist tools.
// svc may be nil, in which case the affirmation tool is not registered.
func CreateMCPServer(s *store.TaskStore, svc *affirm.Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dailyctl",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List today's checklist tasks with completion counts",
	}, ListTasksHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a task to today's checklist",
	}, AddTaskHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_task",
		Description: "Toggle a task between pending and completed",
	}, ToggleTaskHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task from today's checklist",
	}, DeleteTaskHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_streak",
		Description: "Get the current consecutive-day completion streak",
	}, GetStreakHandler(s))

	if svc != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "generate_affirmation",
			Description: "Generate an encouraging affirmation for today's completed tasks",
		}, GenerateAffirmationHandler(s, svc))
	}

	return server
}
