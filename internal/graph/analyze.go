package graph

import "path"

// SourceFile is one input to an ingestion pass: a path and its already
// decoded text. Reading and decoding happen outside the core; the analysis
// itself never touches the filesystem.
type SourceFile struct {
	Path string
	Text string
}

// Options tunes the extractor caps. Zero values fall back to the defaults,
// so Options{} is always safe.
type Options struct {
	MaxSymbols  int // per native/shader/build unit
	MaxCalls    int // call-site symbols per native unit
	MaxDataKeys int // key symbols per structured-data unit
	Layout      LayoutOptions
}

// DefaultOptions returns the caps the analysis was tuned with.
func DefaultOptions() Options {
	return Options{
		MaxSymbols:  20,
		MaxCalls:    10,
		MaxDataKeys: 10,
		Layout:      DefaultLayoutOptions(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxSymbols <= 0 {
		o.MaxSymbols = def.MaxSymbols
	}
	if o.MaxCalls <= 0 {
		o.MaxCalls = def.MaxCalls
	}
	if o.MaxDataKeys <= 0 {
		o.MaxDataKeys = def.MaxDataKeys
	}
	o.Layout = o.Layout.withDefaults()
	return o
}

// BuildGraph runs the full analysis over an immutable snapshot of source
// files and returns a fresh graph value. The pass is synchronous and
// two-phase: every file is classified and extracted before any dependency
// resolution starts, because resolution needs the complete namespace.
//
// The first occurrence of a path wins; later duplicates are dropped so unit
// ids stay unique.
func BuildGraph(files []SourceFile, opts Options) *Graph {
	opts = opts.withDefaults()

	// Phase 1: classify and extract.
	var units []*SourceUnit
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		id := NormalizePath(f.Path)
		if seen[id] {
			continue
		}
		cat, keep := Classify(id)
		if !keep {
			continue
		}
		seen[id] = true
		units = append(units, &SourceUnit{
			ID:       id,
			Name:     path.Base(id),
			Category: cat,
			Group:    GroupOf(id),
			Text:     f.Text,
			Symbols:  extractSymbols(cat, f.Text, opts),
		})
	}

	// Phase 2: resolve, then assemble.
	edges := ResolveDependencies(units)
	g := Assemble(units, edges)
	ApplyLayout(g, opts.Layout)
	return g
}

// extractSymbols dispatches to the extractor for the unit's category.
func extractSymbols(cat Category, text string, opts Options) []Symbol {
	switch cat {
	case CategorySource, CategoryHeader:
		symbols := ExtractNativeSymbols(text, opts.MaxSymbols)
		return append(symbols, ExtractCallSites(text, opts.MaxCalls)...)
	case CategoryShader:
		return ExtractShaderSymbols(text, opts.MaxSymbols)
	case CategoryBuild:
		return ExtractBuildSymbols(text, opts.MaxSymbols)
	case CategoryData:
		return ExtractDataSymbols(text, opts.MaxDataKeys)
	default:
		return nil
	}
}

// Assemble combines the extracted units and resolved edges into the final
// graph value and back-fills per-unit connectivity metrics. It adds no
// validation of its own: uniqueness, endpoint existence and loop-freedom
// are guaranteed upstream.
func Assemble(units []*SourceUnit, edges []Edge) *Graph {
	g := &Graph{Nodes: units, Links: edges}

	byID := make(map[string]*SourceUnit, len(units))
	for _, u := range units {
		byID[u.ID] = u
		u.Metrics = &UnitMetrics{Symbols: len(u.Symbols)}
	}
	for _, e := range edges {
		if src := byID[e.Source]; src != nil {
			src.Metrics.Outbound++
		}
		if dst := byID[e.Target]; dst != nil {
			dst.Metrics.Inbound++
		}
	}
	for _, u := range units {
		u.Metrics.Coupling = u.Metrics.Inbound + u.Metrics.Outbound
	}
	return g
}
