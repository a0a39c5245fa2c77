package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thellimist/fixturegen/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve fixture rendering as an MCP tool over stdio",
	Long: `Run an MCP server on stdin/stdout exposing the render_fixture tool.

The tool takes a "descriptor" (object, or JSON/YAML text) and an optional
"collapse_positionals" boolean, and returns the rendered fixture as text.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("serving MCP on stdio", "tool", mcpserver.ToolName)
		return mcpserver.New(appVersion, logger).ServeStdio()
	},
}
