package mcptools

// --- MCP Tool Types for the codeatlas server mode (--serve-mcp) ---
// These tools are exposed when the binary runs as an MCP server over stdio,
// so an assistant can drive the analysis with structured calls instead of
// shelling out.

import "github.com/dusk-indust/codeatlas/internal/graph"

// AnalyzeProjectInput is the input for the analyze_project MCP tool.
type AnalyzeProjectInput struct {
	ProjectRoot string `json:"projectRoot" jsonschema:"path to the project to analyze"`
}

// AnalyzeProjectOutput is the result of the analyze_project MCP tool.
type AnalyzeProjectOutput struct {
	Units   int    `json:"units"`
	Edges   int    `json:"edges"`
	Symbols int    `json:"symbols"`
	Status  string `json:"status"` // "completed" or "failed"
	Message string `json:"message,omitempty"`
}

// GetUnitInput is the input for the get_unit MCP tool.
type GetUnitInput struct {
	ID string `json:"id" jsonschema:"unit id (root-relative slash path)"`
}

// GetUnitOutput is the result of the get_unit MCP tool.
type GetUnitOutput struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Group    string             `json:"group"`
	Symbols  []graph.Symbol     `json:"symbols"`
	Metrics  *graph.UnitMetrics `json:"metrics,omitempty"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Units      int            `json:"units"`
	Edges      int            `json:"edges"`
	ByCategory map[string]int `json:"byCategory"`
	ByReason   map[string]int `json:"byReason"`
}

// CompareUnitsInput is the input for the compare_units MCP tool.
type CompareUnitsInput struct {
	A string `json:"a" jsonschema:"first unit id"`
	B string `json:"b" jsonschema:"second unit id"`
}

// CompareUnitsOutput is the result of the compare_units MCP tool.
type CompareUnitsOutput struct {
	SharedSymbols []string `json:"sharedSymbols"`
	References    []string `json:"references"` // "symbol: from -> to (line N)"
}
