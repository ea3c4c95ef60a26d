package graph

import (
	"regexp"
	"strings"
)

var reCallSite = regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(`)

// callStoplist holds keywords, operators and casts that look like calls but
// never are, plus a few ubiquitous macros.
var callStoplist = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "return": true,
	"sizeof": true, "alignof": true, "decltype": true, "catch": true,
	"throw": true, "new": true, "delete": true, "operator": true,
	"static_cast": true, "dynamic_cast": true, "reinterpret_cast": true,
	"const_cast": true, "assert": true, "defined": true,
}

// ExtractCallSites scans C/C++ content for identifier( occurrences and
// returns one call-site symbol per distinct callee, in first-occurrence
// order, capped at limit.
//
// Lines that resemble a definition header are skipped so a function's own
// signature is not counted as a call to itself. Capitalized identifiers are
// excluded as likely constructors or type conversions.
func ExtractCallSites(content string, limit int) []Symbol {
	var symbols []Symbol
	seen := make(map[string]bool)

	for i, line := range strings.Split(content, "\n") {
		if len(symbols) >= limit {
			break
		}
		trimmed := strings.TrimSpace(line)
		if skipNativeLine(trimmed) {
			continue
		}
		if looksLikeDefinition(line, trimmed) {
			continue
		}

		for _, m := range reCallSite.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if callStoplist[name] || seen[name] {
				continue
			}
			if c := name[0]; c >= 'A' && c <= 'Z' {
				continue
			}
			seen[name] = true
			symbols = append(symbols, Symbol{Name: name, Line: i + 1, Kind: SymbolKindCall})
			if len(symbols) >= limit {
				break
			}
		}
	}
	return symbols
}
