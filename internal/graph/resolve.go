package graph

import (
	"path"
	"regexp"
	"strings"
)

// Resolution runs strictly after the whole corpus has been classified and
// extracted: every tier searches the complete unit namespace, so partial or
// streaming resolution is impossible by construction.
//
// All resolution is best-effort. An unmatched or ambiguous reference is
// dropped, never raised — an under-approximated graph beats a crash on an
// adversarial corpus.

var reInclude = regexp.MustCompile(`^\s*#\s*include\s*["<]([^">]+)[">]`)

// includeRef is one detected #include directive.
type includeRef struct {
	path string
	line int
}

// scanIncludes collects include directives from native content. Commented
// directives do not match: the pattern requires '#' as the first
// non-whitespace character of the line.
func scanIncludes(content string) []includeRef {
	var refs []includeRef
	for i, line := range strings.Split(content, "\n") {
		if m := reInclude.FindStringSubmatch(line); m != nil {
			refs = append(refs, includeRef{path: m[1], line: i + 1})
		}
	}
	return refs
}

// resolver holds the per-pass state: lookup indexes over the immutable unit
// set and the dedup set for emitted edges. It is created fresh for every
// resolution pass and discarded afterwards; no module-level state survives.
type resolver struct {
	units  []*SourceUnit
	byID   map[string]*SourceUnit
	byBase map[string][]*SourceUnit
	seen   map[string]bool
	edges  []Edge
}

func newResolver(units []*SourceUnit) *resolver {
	r := &resolver{
		units:  units,
		byID:   make(map[string]*SourceUnit, len(units)),
		byBase: make(map[string][]*SourceUnit),
		seen:   make(map[string]bool),
	}
	for _, u := range units {
		r.byID[u.ID] = u
		base := path.Base(u.ID)
		r.byBase[base] = append(r.byBase[base], u)
	}
	return r
}

// ResolveDependencies infers every cross-unit edge for the given corpus:
// native includes, structured-data usage, and build-script references.
// Units are mutated only by appending synthetic include-reference symbols.
func ResolveDependencies(units []*SourceUnit) []Edge {
	r := newResolver(units)
	r.resolveIncludes()
	r.resolveDataUsage()
	r.resolveBuildScripts()
	return r.edges
}

// addEdge records an edge unless it is a self-loop or a duplicate of the
// (source, target) pair. Reports whether the edge was added.
func (r *resolver) addEdge(source, target string, reason EdgeReason) bool {
	if source == target {
		return false
	}
	key := source + "|" + target
	if r.seen[key] {
		return false
	}
	r.seen[key] = true
	r.edges = append(r.edges, Edge{Source: source, Target: target, Reason: reason})
	return true
}

// --- Include resolution ---

// includeStrategy is one fallback tier mapping a raw include path to a unit
// id. Strategies are tried in order; the first success wins.
type includeStrategy func(r *resolver, ref, fromDir string) (string, bool)

var includeStrategies = []includeStrategy{
	resolveExactID,
	resolveDirRelative,
	resolveSuffix,
	resolveUniqueBasename,
}

// resolveExactID matches the normalized reference against unit ids directly.
func resolveExactID(r *resolver, ref, _ string) (string, bool) {
	if _, ok := r.byID[ref]; ok {
		return ref, true
	}
	return "", false
}

// resolveDirRelative joins the reference onto the including unit's
// directory, which also collapses ../ segments.
func resolveDirRelative(r *resolver, ref, fromDir string) (string, bool) {
	candidate := path.Join(fromDir, ref)
	if _, ok := r.byID[candidate]; ok {
		return candidate, true
	}
	return "", false
}

// resolveSuffix matches a directory-qualified reference as a path suffix of
// any unit id, in corpus order for determinism. Bare filenames are left to
// the basename tier, which knows how to treat multi-matches as ambiguous.
func resolveSuffix(r *resolver, ref, _ string) (string, bool) {
	if !strings.Contains(ref, "/") {
		return "", false
	}
	for _, u := range r.units {
		if strings.HasSuffix(u.ID, "/"+ref) {
			return u.ID, true
		}
	}
	return "", false
}

// resolveUniqueBasename matches the reference's bare filename. An ambiguous
// multi-match is treated as no match, not an error.
func resolveUniqueBasename(r *resolver, ref, _ string) (string, bool) {
	candidates := r.byBase[path.Base(ref)]
	if len(candidates) == 1 {
		return candidates[0].ID, true
	}
	return "", false
}

// resolveIncludes maps every include directive in native units onto a
// concrete unit. A resolved include yields an edge from the included unit
// to the including unit (the definition flows into its consumer) and a
// synthetic include-reference symbol on the including unit.
func (r *resolver) resolveIncludes() {
	for _, u := range r.units {
		if u.Category != CategorySource && u.Category != CategoryHeader {
			continue
		}
		fromDir := path.Dir(u.ID)
		for _, inc := range scanIncludes(u.Text) {
			ref := NormalizePath(inc.path)
			target, ok := r.resolveIncludeRef(ref, fromDir)
			if !ok {
				continue
			}
			// The symbol records that the directive resolved; a
			// self-include still resolves, it just yields no edge.
			u.Symbols = append(u.Symbols, Symbol{
				Name: inc.path,
				Line: inc.line,
				Kind: SymbolKindInclude,
			})
			r.addEdge(target, u.ID, ReasonInclude)
		}
	}
}

func (r *resolver) resolveIncludeRef(ref, fromDir string) (string, bool) {
	for _, strategy := range includeStrategies {
		if id, ok := strategy(r, ref, fromDir); ok {
			return id, true
		}
	}
	return "", false
}

// --- Structured-data usage ---

// resolveDataUsage links native units to the data files they mention: any
// source or header whose text contains the data unit's quoted name or id
// gets an edge toward that unit.
func (r *resolver) resolveDataUsage() {
	for _, d := range r.units {
		if d.Category != CategoryData {
			continue
		}
		quotedName := `"` + d.Name + `"`
		quotedID := `"` + d.ID + `"`
		for _, u := range r.units {
			if u.Category != CategorySource && u.Category != CategoryHeader {
				continue
			}
			if strings.Contains(u.Text, quotedName) || strings.Contains(u.Text, quotedID) {
				r.addEdge(u.ID, d.ID, ReasonData)
			}
		}
	}
}

// --- Build-script references ---

func isBuildTokenBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '"', '\'', '(', ')':
		return true
	}
	return false
}

// resolveBuildScripts tokenizes each build script and tries every plausible
// token as a file or subdirectory reference. Three attempts per token, first
// hit wins; failures are silently ignored.
func (r *resolver) resolveBuildScripts() {
	for _, b := range r.units {
		if b.Category != CategoryBuild {
			continue
		}
		dir := path.Dir(b.ID)
		tried := make(map[string]bool)

		for _, tok := range strings.FieldsFunc(stripBuildComments(b.Text), isBuildTokenBoundary) {
			if len(tok) < 3 || strings.HasPrefix(tok, "#") || strings.Contains(tok, "${") {
				continue
			}
			if tried[tok] {
				continue
			}
			tried[tok] = true

			if target, ok := r.resolveBuildToken(tok, dir); ok && target != b.ID {
				r.addEdge(b.ID, target, ReasonBuild)
			}
		}
	}
}

func (r *resolver) resolveBuildToken(tok, fromDir string) (string, bool) {
	// (a) Path relative to the script's directory.
	candidate := path.Join(fromDir, NormalizePath(tok))
	if _, ok := r.byID[candidate]; ok {
		return candidate, true
	}

	// (b) Bare filename, restricted to native-code and header units.
	for _, u := range r.byBase[tok] {
		if u.Category == CategorySource || u.Category == CategoryHeader {
			return u.ID, true
		}
	}

	// (c) Subdirectory containing a nested build script.
	subdir := path.Join(fromDir, NormalizePath(tok))
	for _, u := range r.units {
		if u.Category == CategoryBuild && path.Dir(u.ID) == subdir {
			return u.ID, true
		}
	}

	return "", false
}
