package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDataSymbols_NestedObject(t *testing.T) {
	content := "{\n  \"a\": {\n    \"b\": 1\n  }\n}\n"
	got := ExtractDataSymbols(content, 10)
	require.Len(t, got, 2)

	assert.Equal(t, Symbol{Name: "a: {...}", Line: 2, Kind: SymbolKindDataKey}, got[0])
	assert.Equal(t, Symbol{Name: "a.b: 1", Line: 3, Kind: SymbolKindDataKey}, got[1])
}

func TestExtractDataSymbols_ValueFormats(t *testing.T) {
	content := `{
  "count": 3,
  "ratio": 0.5,
  "name": "renderer",
  "tags": ["a", "b", "c"],
  "active": true,
  "parent": null
}`
	got := ExtractDataSymbols(content, 10)
	require.Len(t, got, 6)

	names := make(map[string]bool, len(got))
	for _, s := range got {
		names[s.Name] = true
	}
	for _, want := range []string{
		"active: true",
		"count: 3",
		"name: renderer",
		"parent: null",
		"ratio: 0.5",
		"tags: [3 items]",
	} {
		assert.True(t, names[want], "missing symbol %q", want)
	}
}

func TestExtractDataSymbols_KeysSorted(t *testing.T) {
	got := ExtractDataSymbols(`{"zeta": 1, "alpha": 2}`, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha: 2", got[0].Name)
	assert.Equal(t, "zeta: 1", got[1].Name)
}

func TestExtractDataSymbols_LongStringTruncated(t *testing.T) {
	got := ExtractDataSymbols(`{"msg": "abcdefghijklmnopqrstuvwxy"}`, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "msg: abcdefghijklmnopqrst...", got[0].Name)
}

func TestExtractDataSymbols_FallbackScan(t *testing.T) {
	content := "{\n  \"first\": 1,\n  \"second\": oops,\n}\n"
	got := ExtractDataSymbols(content, 10)
	require.Len(t, got, 2)
	assert.Equal(t, Symbol{Name: "first", Line: 2, Kind: SymbolKindDataKey}, got[0])
	assert.Equal(t, Symbol{Name: "second", Line: 3, Kind: SymbolKindDataKey}, got[1])
}

func TestExtractDataSymbols_TopLevelArray(t *testing.T) {
	assert.Empty(t, ExtractDataSymbols(`[1, 2, 3]`, 10))
}

func TestExtractDataSymbols_Cap(t *testing.T) {
	got := ExtractDataSymbols(`{"a":1,"b":2,"c":3,"d":4,"e":5}`, 3)
	assert.Len(t, got, 3)
}
