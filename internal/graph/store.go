package graph

import (
	"context"
	"io"
)

// Store persists an analysis result between sessions. The contract is
// atomic replacement: SaveGraph drops whatever graph was stored before and
// writes the new one whole — there is no merge or partial update, matching
// how ingestion replaces the in-memory graph.
// Implementations: KuzuStore (production), MemStore (testing).
type Store interface {
	io.Closer

	// InitSchema prepares the backend. Called once before any write.
	InitSchema(ctx context.Context) error

	// SaveGraph replaces the stored graph with g.
	SaveGraph(ctx context.Context, g *Graph) error

	// LoadGraph restores the stored graph, or returns an empty graph when
	// nothing has been saved yet.
	LoadGraph(ctx context.Context) (*Graph, error)

	// Stats summarizes the stored graph.
	Stats(ctx context.Context) (*GraphStats, error)
}

// GraphStats summarizes a stored graph.
type GraphStats struct {
	UnitCount   int `json:"unitCount"`
	EdgeCount   int `json:"edgeCount"`
	SymbolCount int `json:"symbolCount"`
}
