package cmd

import (
	"context"
	"log"
	"os"

	"github.com/calahan-dev/dailyctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes checklist tools
over stdio transport. This allows MCP clients like Claude Desktop to manage
your daily tasks.

Available tools:
  - list_tasks: List today's checklist with completion counts
  - add_task: Add a task to today's checklist
  - toggle_task: Toggle a task between pending and completed
  - delete_task: Delete a task
  - get_streak: Read the consecutive-day completion streak
  - generate_affirmation: Generate an affirmation for completed tasks

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "dailyctl": {
        "command": "/path/to/dailyctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Storage is already initialized in PersistentPreRunE
	if taskStore == nil {
		return cmd.Help()
	}

	server := mcptools.CreateMCPServer(taskStore, affirmSvc)

	// Log to stderr (stdout is reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("Starting dailyctl MCP server (stdio transport)")
	log.Printf("Storage backend: %s", appConfig.Storage)
	log.Printf("Data directory: %s", appConfig.DataDir)

	// Blocks until the transport is closed
	return server.Run(context.Background(), &mcp.StdioTransport{})
}
