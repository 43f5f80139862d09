package mcptools

import (
	"context"

	"github.com/calahan-dev/dailyctl/internal/affirm"
	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GenerateAffirmationHandler returns the handler function for the
// generate_affirmation MCP tool. The tool never fails on model trouble;
// fallback text is reported with its status instead.
func GenerateAffirmationHandler(s *store.TaskStore, svc *affirm.Service) func(ctx context.Context, req *mcp.CallToolRequest, input GenerateAffirmationInput) (*mcp.CallToolResult, GenerateAffirmationOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GenerateAffirmationInput) (*mcp.CallToolResult, GenerateAffirmationOutput, error) {
		completed, err := s.CompletedTasks()
		if err != nil {
			return nil, GenerateAffirmationOutput{}, err
		}

		res := svc.GenerateAffirmation(ctx, completed)
		return nil, GenerateAffirmationOutput{
			Text:            res.Text,
			IsUsingFallback: res.IsUsingFallback,
			Status:          res.Status,
		}, nil
	}
}
