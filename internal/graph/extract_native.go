package graph

import (
	"regexp"
	"strings"
)

// Native-code extraction is a single pass over the lines of a C/C++ file.
// Each line is tried against the patterns in priority order; the first match
// wins. Comment and preprocessor lines are skipped wholesale, so symbols in
// commented-out code never surface.
var (
	reTemplateType = regexp.MustCompile(`^\s*template\s*<.*?>\s*(?:class|struct)\s+([A-Za-z_]\w*)`)
	reNamespace    = regexp.MustCompile(`^\s*(?:inline\s+)?namespace\s+([A-Za-z_][\w:]*)`)
	reTypeDef      = regexp.MustCompile(`^\s*(?:typedef\s+)?(?:class|struct|enum)(?:\s+(?:class|struct))?\s+([A-Za-z_]\w*)`)

	// reFunctionDef matches a type-prefixed identifier followed by an opening
	// paren. The prefix must end in whitespace, '*' or '&' so that qualified
	// names stay inside the capture group.
	reFunctionDef = regexp.MustCompile(`^\s*(?:[A-Za-z_][\w<>,:\s*&]*[\s*&])(~?[A-Za-z_]\w*(?:::~?[A-Za-z_]\w*)*)\s*\(`)
)

// controlKeywords are line-leading keywords that disqualify a line from
// being a definition header.
var controlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "return": true, "goto": true,
	"sizeof": true, "catch": true, "throw": true, "new": true,
	"delete": true,
}

// skipNativeLine reports whether a line is a comment or preprocessor
// directive and carries no extractable symbols.
func skipNativeLine(trimmed string) bool {
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "#")
}

// leadingWord returns the first identifier-like token of a trimmed line.
func leadingWord(trimmed string) string {
	for i, r := range trimmed {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return trimmed[:i]
		}
	}
	return trimmed
}

// looksLikeDefinition reports whether a line resembles a function definition
// header rather than a statement containing a call.
func looksLikeDefinition(line, trimmed string) bool {
	if controlKeywords[leadingWord(trimmed)] {
		return false
	}
	return reFunctionDef.MatchString(line)
}

// ExtractNativeSymbols scans C/C++ content line by line and returns type,
// namespace, and function definitions in source order, capped at limit.
func ExtractNativeSymbols(content string, limit int) []Symbol {
	var symbols []Symbol
	for i, line := range strings.Split(content, "\n") {
		if len(symbols) >= limit {
			break
		}
		trimmed := strings.TrimSpace(line)
		if skipNativeLine(trimmed) {
			continue
		}

		if m := reTemplateType.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{Name: m[1], Line: i + 1, Kind: SymbolKindType})
			continue
		}
		if m := reNamespace.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{Name: m[1], Line: i + 1, Kind: SymbolKindType})
			continue
		}
		if m := reTypeDef.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{Name: m[1], Line: i + 1, Kind: SymbolKindType})
			continue
		}
		if controlKeywords[leadingWord(trimmed)] {
			continue
		}
		if m := reFunctionDef.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{Name: m[1], Line: i + 1, Kind: SymbolKindFunction})
		}
	}
	return symbols
}
