// Package discovery lists the tools of an MCP server and turns each tool's
// input schema into a tool descriptor.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thellimist/fixturegen/internal/descriptor"
	"github.com/thellimist/fixturegen/internal/nameutil"
	"github.com/thellimist/fixturegen/internal/schema"
)

// Source says how to reach an MCP server: either a Streamable HTTP URL or a
// command speaking MCP over stdin/stdout.
type Source struct {
	URL     string
	Headers map[string]string // sent with every HTTP request

	Command string
	Args    []string
	Env     []string // KEY=VALUE, added to the child's environment
}

// String identifies the source in messages.
func (s Source) String() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Command
}

// Connect returns a started client for src. The caller closes it.
func Connect(ctx context.Context, src Source) (*client.Client, error) {
	switch {
	case src.URL != "" && src.Command != "":
		return nil, fmt.Errorf("discovery: source has both a URL and a command")
	case src.URL != "":
		c, err := client.NewStreamableHttpClient(src.URL, transport.WithHTTPHeaders(src.Headers))
		if err != nil {
			return nil, fmt.Errorf("discovery: create http client for %s: %w", src.URL, err)
		}
		if err := c.Start(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("discovery: connect to %s: %w", src.URL, err)
		}
		return c, nil
	case src.Command != "":
		// The stdio client starts the child process itself.
		c, err := client.NewStdioMCPClient(src.Command, src.Env, src.Args...)
		if err != nil {
			return nil, fmt.Errorf("discovery: start %s: %w", src.Command, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("discovery: source has neither a URL nor a command")
	}
}

// ListTools performs the initialize handshake on a started client and
// returns the server's tools sorted by name.
func ListTools(ctx context.Context, c *client.Client, clientName, clientVersion string) ([]mcp.Tool, error) {
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: clientVersion}
	req.Params.Capabilities = mcp.ClientCapabilities{}

	if _, err := c.Initialize(ctx, req); err != nil {
		return nil, fmt.Errorf("discovery: initialize: %w", err)
	}

	res, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("discovery: tools/list: %w", err)
	}

	tools := res.Tools
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools, nil
}

// Describe converts an MCP tool into a validated descriptor. The task name is
// derived from the tool name; version is used as the image tag.
func Describe(tool mcp.Tool, version string) (*descriptor.ToolDescriptor, error) {
	raw, err := json.Marshal(tool)
	if err != nil {
		return nil, fmt.Errorf("discovery: encode tool %q: %w", tool.Name, err)
	}
	var wire struct {
		InputSchema json.RawMessage `json:"inputSchema"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("discovery: decode tool %q: %w", tool.Name, err)
	}

	ex, err := schema.Extract(wire.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("discovery: tool %q: %w", tool.Name, err)
	}

	d := &descriptor.ToolDescriptor{
		Name:               nameutil.TaskName(tool.Name),
		Version:            version,
		Arguments:          ex.Arguments,
		CompanionResources: ex.Companions,
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("discovery: tool %q: %w", tool.Name, err)
	}
	return d, nil
}
