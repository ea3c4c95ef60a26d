package mcptools

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/codeatlas/internal/graph"
	"github.com/dusk-indust/codeatlas/internal/ingest"
	"github.com/dusk-indust/codeatlas/internal/interact"
)

// AtlasService handles MCP tool calls for the codeatlas server mode. It
// holds the most recent analysis result; each analyze_project call replaces
// it atomically, matching the core's no-merge lifecycle.
type AtlasService struct {
	opts graph.Options

	mu    sync.Mutex
	graph *graph.Graph
}

// NewAtlasService creates an AtlasService using the given analysis options.
func NewAtlasService(opts graph.Options) *AtlasService {
	return &AtlasService{opts: opts}
}

// AnalyzeProject ingests a project root and builds a fresh graph.
func (s *AtlasService) AnalyzeProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeProjectInput,
) (*mcp.CallToolResult, AnalyzeProjectOutput, error) {
	if input.ProjectRoot == "" {
		return nil, AnalyzeProjectOutput{
			Status:  "failed",
			Message: "projectRoot is required",
		}, fmt.Errorf("missing projectRoot")
	}

	files, err := ingest.LoadCorpus(ctx, input.ProjectRoot, ingest.Options{})
	if err != nil {
		return nil, AnalyzeProjectOutput{
			Status:  "failed",
			Message: err.Error(),
		}, nil
	}

	g := graph.BuildGraph(files, s.opts)

	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()

	out := AnalyzeProjectOutput{
		Units:  len(g.Nodes),
		Edges:  len(g.Links),
		Status: "completed",
	}
	for _, n := range g.Nodes {
		out.Symbols += len(n.Symbols)
	}
	return nil, out, nil
}

// GetUnit returns one unit's extracted metadata from the current graph.
func (s *AtlasService) GetUnit(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetUnitInput,
) (*mcp.CallToolResult, GetUnitOutput, error) {
	g, err := s.currentGraph()
	if err != nil {
		return nil, GetUnitOutput{}, err
	}
	unit := g.Unit(graph.NormalizePath(input.ID))
	if unit == nil {
		return nil, GetUnitOutput{}, fmt.Errorf("unknown unit: %s", input.ID)
	}
	return nil, GetUnitOutput{
		ID:       unit.ID,
		Name:     unit.Name,
		Category: string(unit.Category),
		Group:    unit.Group,
		Symbols:  unit.Symbols,
		Metrics:  unit.Metrics,
	}, nil
}

// GraphStats summarizes the current graph by category and edge reason.
func (s *AtlasService) GraphStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	g, err := s.currentGraph()
	if err != nil {
		return nil, GraphStatsOutput{}, err
	}
	out := GraphStatsOutput{
		Units:      len(g.Nodes),
		Edges:      len(g.Links),
		ByCategory: make(map[string]int),
		ByReason:   make(map[string]int),
	}
	for _, n := range g.Nodes {
		out.ByCategory[string(n.Category)]++
	}
	for _, e := range g.Links {
		out.ByReason[string(e.Reason)]++
	}
	return nil, out, nil
}

// CompareUnits runs the interaction analysis on two units of the current
// graph.
func (s *AtlasService) CompareUnits(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CompareUnitsInput,
) (*mcp.CallToolResult, CompareUnitsOutput, error) {
	g, err := s.currentGraph()
	if err != nil {
		return nil, CompareUnitsOutput{}, err
	}
	a := g.Unit(graph.NormalizePath(input.A))
	b := g.Unit(graph.NormalizePath(input.B))
	if a == nil || b == nil {
		return nil, CompareUnitsOutput{}, fmt.Errorf("both units must exist in the current graph")
	}

	report := interact.Compare(a, b)
	out := CompareUnitsOutput{SharedSymbols: report.SharedSymbols}
	for _, ref := range report.References {
		out.References = append(out.References,
			fmt.Sprintf("%s: %s -> %s (line %d)", ref.Symbol, ref.From, ref.To, ref.Line))
	}
	return nil, out, nil
}

func (s *AtlasService) currentGraph() (*graph.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return nil, fmt.Errorf("no graph yet: call analyze_project first")
	}
	return s.graph, nil
}
