package graph

// --- Enums ---

// Category classifies a source unit by the role its file plays in the corpus.
type Category string

const (
	CategoryHeader Category = "header"
	CategorySource Category = "source"
	CategoryBuild  Category = "build"
	CategoryData   Category = "data"
	CategoryShader Category = "shader"
	CategoryOther  Category = "other"
)

// SymbolKind tags a symbol with the construct it names. The set is closed:
// behavior never varies per kind beyond the tag itself and a display lookup
// on the rendering side.
type SymbolKind string

const (
	SymbolKindType     SymbolKind = "type"
	SymbolKindFunction SymbolKind = "function"
	SymbolKindCall     SymbolKind = "call"
	SymbolKindShader   SymbolKind = "shader-decl"
	SymbolKindTarget   SymbolKind = "build-target"
	SymbolKindVariable SymbolKind = "build-var"
	SymbolKindDataKey  SymbolKind = "data-key"
	SymbolKindInclude  SymbolKind = "include"
)

// EdgeReason records which resolution pass produced an edge. The meaning of
// the (source, target) pair depends on it: include edges point from the
// included unit to the including unit (definition flows into consumer),
// build and data edges point from the consumer's script or code toward the
// referenced unit.
type EdgeReason string

const (
	ReasonInclude EdgeReason = "include"
	ReasonBuild   EdgeReason = "build"
	ReasonData    EdgeReason = "data"
)

// --- Models ---

// Symbol is a named construct found in a source unit, with its 1-based
// origin line.
type Symbol struct {
	Name string     `json:"name"`
	Line int        `json:"line"`
	Kind SymbolKind `json:"kind"`
}

// UnitMetrics summarizes a unit's connectivity in the final edge list.
type UnitMetrics struct {
	Symbols  int `json:"symbols"`
	Inbound  int `json:"inbound"`
	Outbound int `json:"outbound"`
	Coupling int `json:"coupling"`
}

// SourceUnit is one ingested file plus everything extracted from it. The ID
// is the normalized, slash-separated path relative to the corpus root and is
// unique across the ingested set. Group is the name of the containing
// directory ("root" for top-level files).
//
// X and Y are optional cached layout coordinates. Units created by an
// ingestion pass have none; units restored from a persisted graph may carry
// positions the user dragged them to, which the layout pass preserves.
type SourceUnit struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category Category     `json:"category"`
	Group    string       `json:"group"`
	Text     string       `json:"text"`
	Symbols  []Symbol     `json:"symbols"`
	X        *float64     `json:"x,omitempty"`
	Y        *float64     `json:"y,omitempty"`
	Height   float64      `json:"height,omitempty"`
	Metrics  *UnitMetrics `json:"metrics,omitempty"`
}

// Edge is a directed dependency between two source units. (Source, Target)
// is the identity: parallel edges collapse to one regardless of reason, and
// self-loops are never produced.
type Edge struct {
	Source string     `json:"source"`
	Target string     `json:"target"`
	Reason EdgeReason `json:"reason"`
}

// Graph is the complete analysis result: every surviving source unit plus
// the deduplicated dependency edges between them. It is a plain serializable
// value with no internal schema versioning; each ingestion pass replaces it
// atomically.
type Graph struct {
	Nodes []*SourceUnit `json:"nodes"`
	Links []Edge        `json:"links"`
}

// Unit returns the node with the given id, or nil.
func (g *Graph) Unit(id string) *SourceUnit {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
