// Package main implements a small MCP stdio server for E2E testing. Its
// tools mimic GATK walkers; their input schemas use the x-category and
// x-companion-of keywords so discovery exercises every argument category.
package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	s := server.NewMCPServer("gatk-walkers", "4.2.0.0")

	s.AddTool(
		mcp.NewTool("print_reads",
			mcp.WithDescription("Write reads from a SAM/BAM/CRAM file"),
			mcp.WithString("input", mcp.Required(), mcp.Description("BAM/SAM/CRAM file containing reads")),
			mcp.WithString("input_index", companionOf("input"), mcp.Description("Index of the input file")),
			mcp.WithString("output", mcp.Required(), mcp.Description("Write output to this file")),
			mcp.WithNumber("read_filter_count", mcp.DefaultNumber(0)),
			mcp.WithArray("intervals", mcp.Description("Genomic intervals to operate over")),
			mcp.WithBoolean("verbosity_lenient", category("common")),
		),
		noopHandler,
	)

	s.AddTool(
		mcp.NewTool("count_reads",
			mcp.WithDescription("Count reads in a SAM/BAM/CRAM file"),
			mcp.WithString("reads", category("positional")),
			mcp.WithString("reference", mcp.Enum("hg38.fasta", "hg19.fasta")),
		),
		noopHandler,
	)

	if err := server.ServeStdio(s); err != nil {
		fmt.Printf("server error: %v\n", err)
	}
}

func category(name string) mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["x-category"] = name
	}
}

func companionOf(owner string) mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["x-companion-of"] = owner
	}
}

func noopHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("ok"), nil
}
