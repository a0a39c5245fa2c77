// Package mcpserver exposes fixture rendering as an MCP tool.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thellimist/fixturegen/internal/descriptor"
	"github.com/thellimist/fixturegen/internal/fixture"
)

// ToolName is the MCP tool that renders a fixture.
const ToolName = "render_fixture"

// Server wraps an MCP server with the render_fixture tool registered.
type Server struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// New creates the server. version is reported in the MCP handshake.
func New(version string, logger *slog.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("fixturegen", strings.TrimSpace(version)),
		logger:    logger,
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(ToolName,
			mcp.WithDescription("Render the JSON test-input fixture for a wrapped command-line tool. "+
				"The descriptor holds name, version, arguments {positional, required, optional, common}, "+
				"optional runtimeProperties and companionResources."),
			mcp.WithObject("descriptor", mcp.Required(), objectOrDocument(),
				mcp.Description("Tool descriptor as an object, or a JSON/YAML document string")),
			mcp.WithBoolean("collapse_positionals",
				mcp.Description("Emit positional arguments as one array-valued positionalArgs entry")),
		),
		s.handleRender,
	)
}

// objectOrDocument widens a property to accept an object or a string.
func objectOrDocument() mcp.PropertyOption {
	return func(schema map[string]any) {
		delete(schema, "type")
		delete(schema, "properties")
		schema["anyOf"] = []any{
			map[string]any{"type": "object"},
			map[string]any{"type": "string"},
		}
	}
}

func (s *Server) handleRender(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	d, err := decodeDescriptor(args["descriptor"])
	if err != nil {
		s.logger.Warn("rejected descriptor", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	collapse, _ := args["collapse_positionals"].(bool)
	doc, err := fixture.Render(d, fixture.Options{CollapsePositionals: collapse})
	if err != nil {
		s.logger.Warn("render failed", "tool", d.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("rendered fixture", "tool", d.Name, "bytes", len(doc))
	return mcp.NewToolResultText(doc), nil
}

// decodeDescriptor accepts the descriptor argument as an object or as a
// JSON/YAML string. Strings starting with '{' are parsed as JSON.
func decodeDescriptor(v any) (*descriptor.ToolDescriptor, error) {
	switch raw := v.(type) {
	case map[string]any:
		return descriptor.FromMap(raw)
	case string:
		text := strings.TrimSpace(raw)
		format := descriptor.FormatYAML
		if strings.HasPrefix(text, "{") {
			format = descriptor.FormatJSON
		}
		return descriptor.Parse([]byte(text), format)
	case nil:
		return nil, errors.New("descriptor argument is required")
	default:
		return nil, fmt.Errorf("descriptor argument must be an object or a string, got %T", v)
	}
}
