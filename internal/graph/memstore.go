package graph

import (
	"context"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store by holding a deep copy of the saved graph.
// Thread-safe via sync.RWMutex.
type MemStore struct {
	mu    sync.RWMutex
	graph *Graph
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// SaveGraph replaces the stored graph with a deep copy of g, so later
// mutation of the caller's value cannot leak into the store.
func (m *MemStore) SaveGraph(_ context.Context, g *Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graph = copyGraph(g)
	return nil
}

// LoadGraph returns a deep copy of the stored graph, or an empty graph when
// nothing has been saved.
func (m *MemStore) LoadGraph(_ context.Context) (*Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.graph == nil {
		return &Graph{}, nil
	}
	return copyGraph(m.graph), nil
}

// Stats returns counts for the stored graph.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &GraphStats{}
	if m.graph == nil {
		return stats, nil
	}
	stats.UnitCount = len(m.graph.Nodes)
	stats.EdgeCount = len(m.graph.Links)
	for _, n := range m.graph.Nodes {
		stats.SymbolCount += len(n.Symbols)
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

func copyGraph(g *Graph) *Graph {
	out := &Graph{
		Nodes: make([]*SourceUnit, len(g.Nodes)),
		Links: make([]Edge, len(g.Links)),
	}
	copy(out.Links, g.Links)
	for i, n := range g.Nodes {
		c := *n
		c.Symbols = append([]Symbol(nil), n.Symbols...)
		if n.X != nil {
			x := *n.X
			c.X = &x
		}
		if n.Y != nil {
			y := *n.Y
			c.Y = &y
		}
		if n.Metrics != nil {
			mc := *n.Metrics
			c.Metrics = &mc
		}
		out.Nodes[i] = &c
	}
	return out
}
