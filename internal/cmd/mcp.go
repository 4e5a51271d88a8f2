package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/mcp"
)

var mcpRoot string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server to integrate with LLM tools",
	Long: `Start Model Context Protocol (MCP) server.
LLM-based coding tools can lint JavaScript through stdio.

Tools provided by MCP server:
- scan_javascript: Lint a file or source text with the project's .jshintrc
- reload_config: Re-read .jshintrc on the next scan
- show_config: Show the options and globals in effect
- set_project_root: Switch to another project

Communicates via stdio for integration with Claude Desktop, Claude Code, Cursor, and other MCP clients.`,
	Example: `  sym-jshint mcp
  sym-jshint mcp --root ./web`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpRoot, "root", "", "project root holding .jshintrc (default: current directory)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, mcpRoot)
	if err != nil {
		return err
	}

	server := mcp.NewServer(a.inspector, a.loader, version, a.logger)
	return server.Start(ctx)
}
