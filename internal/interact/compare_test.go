package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codeatlas/internal/graph"
)

func TestCompare_SharedSymbols(t *testing.T) {
	header := &graph.SourceUnit{
		ID: "mesh.h",
		Symbols: []graph.Symbol{
			{Name: "Mesh", Line: 1, Kind: graph.SymbolKindType},
			{Name: "upload", Line: 3, Kind: graph.SymbolKindFunction},
		},
	}
	impl := &graph.SourceUnit{
		ID:   "mesh.cpp",
		Text: "#include \"mesh.h\"\nvoid Mesh::upload() {}\n",
		Symbols: []graph.Symbol{
			{Name: "upload", Line: 2, Kind: graph.SymbolKindFunction},
			{Name: "glBufferData", Line: 3, Kind: graph.SymbolKindCall},
			{Name: "mesh.h", Line: 1, Kind: graph.SymbolKindInclude},
		},
	}

	report := Compare(header, impl)
	assert.Equal(t, []string{"upload"}, report.SharedSymbols,
		"call sites and include entries do not count as declarations")
}

func TestCompare_CrossReferences(t *testing.T) {
	header := &graph.SourceUnit{
		ID:   "mesh.h",
		Text: "class Mesh {};\n",
		Symbols: []graph.Symbol{
			{Name: "Mesh", Line: 1, Kind: graph.SymbolKindType},
		},
	}
	impl := &graph.SourceUnit{
		ID:   "main.cpp",
		Text: "int main() {\n    Mesh m;\n}\n",
	}

	report := Compare(header, impl)
	require.Len(t, report.References, 1)
	assert.Equal(t, Reference{Symbol: "Mesh", From: "mesh.h", To: "main.cpp", Line: 2}, report.References[0])
}

func TestCompare_WholeWordOnly(t *testing.T) {
	a := &graph.SourceUnit{
		ID:      "a.h",
		Symbols: []graph.Symbol{{Name: "Node", Line: 1, Kind: graph.SymbolKindType}},
	}
	b := &graph.SourceUnit{
		ID:   "b.cpp",
		Text: "NodeList list;\n",
	}

	report := Compare(a, b)
	assert.Empty(t, report.References, "substring matches do not count")
}

func TestCompare_LabeledSymbolUsesBareName(t *testing.T) {
	script := &graph.SourceUnit{
		ID: "CMakeLists.txt",
		Symbols: []graph.Symbol{
			{Name: "executable: viewer", Line: 2, Kind: graph.SymbolKindTarget},
		},
	}
	doc := &graph.SourceUnit{
		ID:   "README.md",
		Text: "Run the viewer binary after building.\n",
	}

	report := Compare(script, doc)
	require.Len(t, report.References, 1)
	assert.Equal(t, "viewer", report.References[0].Symbol)
}

func TestCompare_BothDirections(t *testing.T) {
	a := &graph.SourceUnit{
		ID:      "a.h",
		Text:    "void beta();\n",
		Symbols: []graph.Symbol{{Name: "alpha", Line: 1, Kind: graph.SymbolKindFunction}},
	}
	b := &graph.SourceUnit{
		ID:      "b.h",
		Text:    "void alpha();\n",
		Symbols: []graph.Symbol{{Name: "beta", Line: 1, Kind: graph.SymbolKindFunction}},
	}

	report := Compare(a, b)
	require.Len(t, report.References, 2)
	assert.Equal(t, "a.h", report.References[0].From)
	assert.Equal(t, "b.h", report.References[1].From)
}

func TestCompare_ReferenceCap(t *testing.T) {
	var symbols []graph.Symbol
	text := ""
	for _, n := range []string{
		"fa", "fb", "fc", "fd", "fe", "ff", "fg", "fh", "fi", "fj",
		"fk", "fl", "fm", "fn2", "fo", "fp", "fq", "fr", "fs", "ft",
		"fu", "fv", "fw", "fx",
	} {
		symbols = append(symbols, graph.Symbol{Name: n, Line: 1, Kind: graph.SymbolKindFunction})
		text += n + "();\n"
	}
	a := &graph.SourceUnit{ID: "a.h", Symbols: symbols}
	b := &graph.SourceUnit{ID: "b.cpp", Text: text}

	report := Compare(a, b)
	assert.Len(t, report.References, 20)
}

func TestCompare_NoOverlap(t *testing.T) {
	a := &graph.SourceUnit{ID: "a.h", Text: "int x;\n"}
	b := &graph.SourceUnit{ID: "b.h", Text: "int y;\n"}

	report := Compare(a, b)
	assert.Empty(t, report.SharedSymbols)
	assert.Empty(t, report.References)
}
