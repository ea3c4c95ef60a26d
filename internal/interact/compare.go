// Package interact is the deep-dive collaborator of the analysis: given two
// source units by reference, it reports how their contents relate beyond
// the graph edges — shared symbol names and direct cross-references. The
// graph itself is never consulted or mutated.
package interact

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dusk-indust/codeatlas/internal/graph"
)

const maxReferences = 20

// Reference is one symbol of one unit mentioned in the other unit's text.
type Reference struct {
	Symbol string `json:"symbol"`
	From   string `json:"from"` // unit that defines the symbol
	To     string `json:"to"`   // unit whose text mentions it
	Line   int    `json:"line"` // 1-based line of the first mention
}

// Report describes the relationship between two units.
type Report struct {
	SharedSymbols []string    `json:"sharedSymbols"`
	References    []Reference `json:"references"`
}

// Compare analyzes two units against each other. Both directions are
// checked; the reference list is capped so a pair of large files cannot
// produce an unbounded report.
func Compare(a, b *graph.SourceUnit) *Report {
	report := &Report{
		SharedSymbols: sharedSymbols(a, b),
	}
	report.References = append(report.References, crossReferences(a, b)...)
	report.References = append(report.References, crossReferences(b, a)...)
	if len(report.References) > maxReferences {
		report.References = report.References[:maxReferences]
	}
	return report
}

// sharedSymbols returns the sorted set of symbol names both units define.
// Call sites and synthetic include entries are ignored: only constructs a
// unit actually declares count as shared.
func sharedSymbols(a, b *graph.SourceUnit) []string {
	defined := func(u *graph.SourceUnit) map[string]bool {
		names := make(map[string]bool)
		for _, s := range u.Symbols {
			if declares(s.Kind) {
				names[s.Name] = true
			}
		}
		return names
	}

	inA := defined(a)
	var shared []string
	for name := range defined(b) {
		if inA[name] {
			shared = append(shared, name)
		}
	}
	sort.Strings(shared)
	return shared
}

func declares(k graph.SymbolKind) bool {
	switch k {
	case graph.SymbolKindType, graph.SymbolKindFunction, graph.SymbolKindShader,
		graph.SymbolKindTarget, graph.SymbolKindVariable:
		return true
	}
	return false
}

// crossReferences finds symbols declared in from whose names occur as whole
// words in to's text.
func crossReferences(from, to *graph.SourceUnit) []Reference {
	var refs []Reference
	for _, s := range from.Symbols {
		if !declares(s.Kind) {
			continue
		}
		name := bareName(s.Name)
		if name == "" {
			continue
		}
		line := firstMention(to.Text, name)
		if line == 0 {
			continue
		}
		refs = append(refs, Reference{
			Symbol: name,
			From:   from.ID,
			To:     to.ID,
			Line:   line,
		})
		if len(refs) >= maxReferences {
			break
		}
	}
	return refs
}

// bareName strips the display decoration from labeled symbol names, e.g.
// "executable: app" yields "app".
func bareName(name string) string {
	if idx := strings.LastIndex(name, ": "); idx >= 0 {
		name = name[idx+2:]
	}
	return strings.TrimSpace(name)
}

// firstMention returns the 1-based line of the first whole-word occurrence
// of name in text, or 0.
func firstMention(text, name string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return 0
	}
	for i, line := range strings.Split(text, "\n") {
		if re.MatchString(line) {
			return i + 1
		}
	}
	return 0
}
