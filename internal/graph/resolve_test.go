package graph

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitsFor builds bare units the way an ingestion pass would, minus symbol
// extraction, which resolution does not depend on.
func unitsFor(t *testing.T, files ...SourceFile) []*SourceUnit {
	t.Helper()
	units := make([]*SourceUnit, 0, len(files))
	for _, f := range files {
		id := NormalizePath(f.Path)
		cat, keep := Classify(id)
		require.True(t, keep, "test corpus file %q unexpectedly dropped", f.Path)
		units = append(units, &SourceUnit{
			ID:       id,
			Name:     path.Base(id),
			Category: cat,
			Group:    GroupOf(id),
			Text:     f.Text,
		})
	}
	return units
}

func TestResolveDependencies_IncludeEdgeAndSyntheticSymbol(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "a.h", Text: "class A {};\n"},
		SourceFile{Path: "a.cpp", Text: "#include \"a.h\"\nvoid run() {}\n"},
	)

	edges := ResolveDependencies(units)
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{Source: "a.h", Target: "a.cpp", Reason: ReasonInclude}, edges[0])

	// The including unit records the directive as a symbol.
	require.Len(t, units[1].Symbols, 1)
	assert.Equal(t, Symbol{Name: "a.h", Line: 1, Kind: SymbolKindInclude}, units[1].Symbols[0])
	assert.Empty(t, units[0].Symbols)
}

func TestResolveDependencies_CommentedIncludeIgnored(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "a.h", Text: ""},
		SourceFile{Path: "a.cpp", Text: "// #include \"a.h\"\n"},
	)
	assert.Empty(t, ResolveDependencies(units))
}

func TestResolveDependencies_IncludeTiers(t *testing.T) {
	tests := []struct {
		name    string
		include string
		from    string
		other   string
		target  string
	}{
		{"exact id", "include/app.h", "src/main.cpp", "include/app.h", "include/app.h"},
		{"dir relative", "util/log.h", "src/main.cpp", "src/util/log.h", "src/util/log.h"},
		{"parent relative", "../include/app.h", "src/main.cpp", "include/app.h", "include/app.h"},
		{"path suffix", "render/mesh.h", "src/main.cpp", "engine/render/mesh.h", "engine/render/mesh.h"},
		{"unique basename", "mesh.h", "src/main.cpp", "engine/render/mesh.h", "engine/render/mesh.h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := unitsFor(t,
				SourceFile{Path: tt.other, Text: ""},
				SourceFile{Path: tt.from, Text: "#include \"" + tt.include + "\"\n"},
			)
			edges := ResolveDependencies(units)
			require.Len(t, edges, 1)
			assert.Equal(t, tt.target, edges[0].Source)
			assert.Equal(t, NormalizePath(tt.from), edges[0].Target)
		})
	}
}

func TestResolveDependencies_AmbiguousBasenameDropped(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "render/camera.h", Text: ""},
		SourceFile{Path: "physics/camera.h", Text: ""},
		SourceFile{Path: "audio/camera.h", Text: ""},
		SourceFile{Path: "src/main.cpp", Text: "#include \"camera.h\"\n"},
	)
	assert.Empty(t, ResolveDependencies(units))
	assert.Empty(t, units[3].Symbols)
}

func TestResolveDependencies_SelfIncludeYieldsSymbolNotEdge(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "gen/table.h", Text: "#include \"table.h\"\nint rows[64];\n"},
	)
	edges := ResolveDependencies(units)
	assert.Empty(t, edges, "a self-include never produces an edge")
	require.Len(t, units[0].Symbols, 1)
	assert.Equal(t, Symbol{Name: "table.h", Line: 1, Kind: SymbolKindInclude}, units[0].Symbols[0])
}

func TestResolveDependencies_DuplicateIncludesDedupe(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "a.h", Text: ""},
		SourceFile{Path: "a.cpp", Text: "#include \"a.h\"\n#include \"a.h\"\n"},
	)
	edges := ResolveDependencies(units)
	assert.Len(t, edges, 1)
}

func TestResolveDependencies_AngleBracketInclude(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "include/engine.h", Text: ""},
		SourceFile{Path: "src/main.cpp", Text: "#include <engine.h>\n"},
	)
	edges := ResolveDependencies(units)
	require.Len(t, edges, 1)
	assert.Equal(t, "include/engine.h", edges[0].Source)
}

func TestResolveDependencies_SystemIncludeUnresolved(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "src/main.cpp", Text: "#include <vector>\n#include <cstdio>\n"},
	)
	assert.Empty(t, ResolveDependencies(units))
}

func TestResolveDependencies_DataUsage(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "assets/scene.json", Text: `{"name": "demo"}`},
		SourceFile{Path: "src/loader.cpp", Text: "Scene s = load(\"scene.json\");\n"},
		SourceFile{Path: "src/editor.cpp", Text: "open(\"assets/scene.json\");\n"},
		SourceFile{Path: "src/other.cpp", Text: "// mentions scene.json without quotes\n"},
	)
	edges := ResolveDependencies(units)
	require.Len(t, edges, 2)
	assert.Contains(t, edges, Edge{Source: "src/loader.cpp", Target: "assets/scene.json", Reason: ReasonData})
	assert.Contains(t, edges, Edge{Source: "src/editor.cpp", Target: "assets/scene.json", Reason: ReasonData})
}

func TestResolveDependencies_BuildScriptReferences(t *testing.T) {
	script := `project(Engine)
add_executable(app src/main.cpp)
add_library(core core.cpp)
add_subdirectory(engine)
set(SRC ${EXTRA_SOURCES})
`
	units := unitsFor(t,
		SourceFile{Path: "CMakeLists.txt", Text: script},
		SourceFile{Path: "src/main.cpp", Text: ""},
		SourceFile{Path: "src/core.cpp", Text: ""},
		SourceFile{Path: "engine/CMakeLists.txt", Text: "project(EngineLib)\n"},
	)

	edges := ResolveDependencies(units)
	require.Len(t, edges, 3)
	assert.Contains(t, edges, Edge{Source: "CMakeLists.txt", Target: "src/main.cpp", Reason: ReasonBuild})
	assert.Contains(t, edges, Edge{Source: "CMakeLists.txt", Target: "src/core.cpp", Reason: ReasonBuild})
	assert.Contains(t, edges, Edge{Source: "CMakeLists.txt", Target: "engine/CMakeLists.txt", Reason: ReasonBuild})
}

func TestResolveDependencies_BuildScriptNoSelfEdge(t *testing.T) {
	units := unitsFor(t,
		SourceFile{Path: "CMakeLists.txt", Text: "install(FILES CMakeLists.txt DESTINATION .)\n"},
	)
	assert.Empty(t, ResolveDependencies(units))
}
