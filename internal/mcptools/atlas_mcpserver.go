package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/codeatlas/internal/graph"
)

const version = "0.1.0"

// NewAtlasMCPServer creates an MCP server with the 4 codeatlas tools
// registered: analyze_project, get_unit, graph_stats, and compare_units.
func NewAtlasMCPServer(opts graph.Options) *mcp.Server {
	svc := NewAtlasService(opts)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "codeatlas",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_project",
		Description: "Ingest a project directory and build its dependency graph. Returns unit/edge/symbol counts.",
	}, svc.AnalyzeProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_unit",
		Description: "Get one source unit from the current graph: category, group, symbols, and connectivity metrics.",
	}, svc.GetUnit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Summarize the current graph: unit and edge counts broken down by category and edge reason.",
	}, svc.GraphStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_units",
		Description: "Deep-dive comparison of two units: shared symbols and cross-references between their texts.",
	}, svc.CompareUnits)

	return server
}

// RunAtlasMCPServerStdio runs the MCP server on stdio transport, blocking
// until stdin is closed or the context is cancelled.
func RunAtlasMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
