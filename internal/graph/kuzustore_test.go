//go:build cgo

package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a fresh in-memory KuzuStore with an initialized schema.
// It registers a cleanup function to close the store when the test finishes.
func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.InitSchema(ctx), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchema(t *testing.T) {
	s, err := NewKuzuStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()

	// First call creates the tables.
	require.NoError(t, s.InitSchema(ctx))

	// Second call should be idempotent (IF NOT EXISTS).
	require.NoError(t, s.InitSchema(ctx))
}

func TestKuzuStore_EmptyLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g, err := s.LoadGraph(ctx)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Links)
}

func TestKuzuStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := BuildGraph(sampleCorpus(), Options{})
	require.NoError(t, s.SaveGraph(ctx, g))

	loaded, err := s.LoadGraph(ctx)
	require.NoError(t, err)

	// The loaded graph reproduces the saved value exactly, including node
	// and edge order, decoded symbols, metrics, and positions.
	assert.Equal(t, g, loaded)
}

func TestKuzuStore_PositionRestore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	x, y := 340.0, 166.0
	pinned := &SourceUnit{
		ID: "pinned.cpp", Name: "pinned.cpp", Category: CategorySource,
		Group: "root", X: &x, Y: &y, Height: 70,
	}
	fresh := &SourceUnit{
		ID: "fresh.cpp", Name: "fresh.cpp", Category: CategorySource,
		Group: "root",
	}
	require.NoError(t, s.SaveGraph(ctx, &Graph{Nodes: []*SourceUnit{pinned, fresh}}))

	loaded, err := s.LoadGraph(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Nodes, 2)

	got := loaded.Unit("pinned.cpp")
	require.NotNil(t, got.X)
	require.NotNil(t, got.Y)
	assert.Equal(t, 340.0, *got.X)
	assert.Equal(t, 166.0, *got.Y)

	// A unit saved without a position comes back without one.
	assert.Nil(t, loaded.Unit("fresh.cpp").X)
	assert.Nil(t, loaded.Unit("fresh.cpp").Y)
}

func TestKuzuStore_SymbolBlobDecode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	symbols := []Symbol{
		{Name: "Engine", Line: 1, Kind: SymbolKindType},
		{Name: "executable: app", Line: 2, Kind: SymbolKindTarget},
		{Name: "a.b: 1", Line: 3, Kind: SymbolKindDataKey},
	}
	u := &SourceUnit{
		ID: "mixed.h", Name: "mixed.h", Category: CategoryHeader,
		Group: "root", Symbols: symbols,
	}
	require.NoError(t, s.SaveGraph(ctx, &Graph{Nodes: []*SourceUnit{u}}))

	loaded, err := s.LoadGraph(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, symbols, loaded.Nodes[0].Symbols)
}

func TestKuzuStore_SaveReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveGraph(ctx, BuildGraph(sampleCorpus(), Options{})))

	replacement := &Graph{
		Nodes: []*SourceUnit{
			{ID: "only.cpp", Name: "only.cpp", Category: CategorySource, Group: "root"},
		},
	}
	require.NoError(t, s.SaveGraph(ctx, replacement))

	loaded, err := s.LoadGraph(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "only.cpp", loaded.Nodes[0].ID)
	assert.Empty(t, loaded.Links)
}

func TestKuzuStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := BuildGraph(sampleCorpus(), Options{})
	require.NoError(t, s.SaveGraph(ctx, g))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(g.Nodes), stats.UnitCount)
	assert.Equal(t, len(g.Links), stats.EdgeCount)

	var symbols int
	for _, n := range g.Nodes {
		symbols += len(n.Symbols)
	}
	assert.Equal(t, symbols, stats.SymbolCount)
}
