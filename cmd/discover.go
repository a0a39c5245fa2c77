package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/thellimist/fixturegen/internal/descriptor"
	"github.com/thellimist/fixturegen/internal/discovery"
	"github.com/thellimist/fixturegen/internal/fixture"
	"github.com/thellimist/fixturegen/internal/selector"
)

var (
	flagURL           string
	flagStdio         string
	flagAuthToken     string
	flagGoogleKeyFile string
	flagEnv           []string
	flagIncludeTools  string
	flagExcludeTools  string
	flagToolVersion   string
	flagDiscoverOut   string
	flagTimeout       int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Render fixtures for every tool of an MCP server",
	Long: `Connect to an MCP server, list its tools and render one fixture per tool.

Each tool's input schema becomes a descriptor: required properties are
required arguments, the rest optional. The extension keywords
"x-category" (positional, required, optional, common) and "x-companion-of"
(name of the accompanied property) refine the layout.

Examples:
  # From an HTTP MCP server
  fixturegen discover --url https://mcp.example.com/mcp --tool-version 4.2.0.0

  # From a stdio MCP server
  fixturegen discover --stdio "gatk-mcp --stdio" --output fixtures/

  # Authenticate with a Google service account
  fixturegen discover --url https://mcp.example.com/mcp --google-key-file sa.json

  # Only some tools
  fixturegen discover --stdio "gatk-mcp" --include-tools print_reads,count_reads`,
	RunE: runDiscover,
}

func init() {
	f := discoverCmd.Flags()
	f.StringVar(&flagURL, "url", "", "Streamable HTTP URL of an MCP server")
	f.StringVar(&flagStdio, "stdio", "", "shell command that spawns a local MCP server via stdin/stdout")
	f.StringVar(&flagAuthToken, "auth-token", "", "bearer token for authenticated MCP servers (or "+discovery.EnvAuthToken+")")
	f.StringVar(&flagGoogleKeyFile, "google-key-file", "", "Google service account JSON key used to obtain a bearer token")
	f.StringSliceVar(&flagEnv, "env", nil, "environment variables for stdio servers (KEY=VALUE, repeatable)")
	f.StringVar(&flagIncludeTools, "include-tools", "", "only render these tools (comma-separated)")
	f.StringVar(&flagExcludeTools, "exclude-tools", "", "skip these tools (comma-separated)")
	f.StringVar(&flagToolVersion, "tool-version", "latest", "tool version used as the docker image tag")
	f.StringVar(&flagDiscoverOut, "output", "./fixtures/", "directory where fixtures are written")
	f.IntVar(&flagTimeout, "timeout", 30000, "timeout in milliseconds for MCP discovery")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := validateDiscoverFlags(); err != nil {
		return err
	}

	if flagAuthToken != "" && flagStdio != "" {
		logger.Warn("--auth-token is ignored for stdio servers, use --env to pass credentials")
	}

	timeout := time.Duration(flagTimeout) * time.Millisecond
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	src, err := discoverySource(ctx)
	if err != nil {
		return err
	}

	logger.Info("connecting to MCP server", "source", src.String())
	client, err := discovery.Connect(ctx, src)
	if err != nil {
		return err
	}
	defer client.Close()

	tools, err := discovery.ListTools(ctx, client, "fixturegen", appVersion)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("MCP server did not respond within %dms", flagTimeout)
		}
		return fmt.Errorf("MCP server at %s: %w", src, err)
	}
	if len(tools) == 0 {
		return fmt.Errorf("MCP server returned no tools")
	}
	logger.Debug("discovered tools", "count", len(tools))

	tools, err = selectTools(tools)
	if err != nil {
		return err
	}

	if err := writeToolFixtures(tools); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d fixtures from %s into %s\n", len(tools), src, flagDiscoverOut)
	}
	return nil
}

// writeToolFixtures renders every tool into --output. All tools are
// described and rendered before the first file is written, so a task name
// shared by two tools leaves the directory untouched.
func writeToolFixtures(tools []mcp.Tool) error {
	type rendered struct {
		tool string
		d    *descriptor.ToolDescriptor
		doc  string
	}

	byTask := make(map[string]string, len(tools))
	out := make([]rendered, 0, len(tools))
	for _, tool := range tools {
		d, err := discovery.Describe(tool, flagToolVersion)
		if err != nil {
			return err
		}
		if prev, dup := byTask[d.Name]; dup {
			return fmt.Errorf("tools %s and %s both render task %s", prev, tool.Name, d.Name)
		}
		byTask[d.Name] = tool.Name

		doc, err := fixture.Render(d, fixture.Options{})
		if err != nil {
			return fmt.Errorf("tool %s: %w", tool.Name, err)
		}
		out = append(out, rendered{tool: tool.Name, d: d, doc: doc})
	}

	for _, r := range out {
		target, err := writeFixture(flagDiscoverOut, r.d.Name, r.doc)
		if err != nil {
			return err
		}
		logger.Info("wrote fixture", "tool", r.tool, "arguments", r.d.Arguments.Len(), "path", target)
	}
	return nil
}

// discoverySource builds the MCP source from --url or --stdio.
func discoverySource(ctx context.Context) (discovery.Source, error) {
	if flagURL != "" {
		ts, err := discovery.TokenSource(ctx, discovery.Credentials{
			Token:         discovery.LookupToken(flagAuthToken),
			GoogleKeyFile: flagGoogleKeyFile,
		})
		if err != nil {
			return discovery.Source{}, err
		}
		headers, err := discovery.AuthHeaders(ts)
		if err != nil {
			return discovery.Source{}, err
		}
		return discovery.Source{URL: flagURL, Headers: headers}, nil
	}

	parts, err := shellquote.Split(flagStdio)
	if err != nil {
		return discovery.Source{}, fmt.Errorf("invalid --stdio command: %s", err)
	}
	if len(parts) == 0 {
		return discovery.Source{}, fmt.Errorf("--stdio command is empty")
	}
	return discovery.Source{Command: parts[0], Args: parts[1:], Env: flagEnv}, nil
}

// selectTools applies --include-tools / --exclude-tools.
func selectTools(tools []mcp.Tool) ([]mcp.Tool, error) {
	include := selector.ParseList(flagIncludeTools)
	exclude := selector.ParseList(flagExcludeTools)
	if len(include) == 0 && len(exclude) == 0 {
		return tools, nil
	}

	byName := make(map[string]mcp.Tool, len(tools))
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
		names = append(names, t.Name)
	}

	kept, err := selector.Selector{Kind: "tool"}.Select(names, include, exclude)
	if err != nil {
		return nil, err
	}
	result := make([]mcp.Tool, 0, len(kept))
	for _, name := range kept {
		result = append(result, byName[name])
	}
	logger.Debug("after filtering", "count", len(result))
	return result, nil
}

func validateDiscoverFlags() error {
	if flagURL == "" && flagStdio == "" {
		return fmt.Errorf("provide --url or --stdio to specify the MCP server")
	}
	if flagURL != "" && flagStdio != "" {
		return fmt.Errorf("--url and --stdio cannot be used together")
	}
	if flagIncludeTools != "" && flagExcludeTools != "" {
		return fmt.Errorf("--include-tools and --exclude-tools cannot be used together")
	}
	if flagGoogleKeyFile != "" && flagStdio != "" {
		return fmt.Errorf("--google-key-file only applies to --url servers")
	}
	if flagToolVersion == "" {
		return fmt.Errorf("--tool-version must not be empty")
	}
	for _, env := range flagEnv {
		if !strings.Contains(env, "=") {
			return fmt.Errorf("invalid --env format %q: expected KEY=VALUE", env)
		}
	}
	return nil
}
