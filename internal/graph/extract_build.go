package graph

import (
	"regexp"
	"sort"
	"strings"
)

// CMake allows declarations to span lines, so build-script patterns search
// the comment-stripped text as a whole rather than line by line. Origin
// lines are recovered afterwards from the match offsets.
var (
	reBuildProject    = regexp.MustCompile(`(?i)\bproject\s*\(\s*([\w.+-]+)`)
	reBuildExecutable = regexp.MustCompile(`(?i)\badd_executable\s*\(\s*([\w.+-]+)`)
	reBuildLibrary    = regexp.MustCompile(`(?i)\badd_library\s*\(\s*([\w.+-]+)`)
	reBuildSubdir     = regexp.MustCompile(`(?i)\badd_subdirectory\s*\(\s*([\w./+-]+)`)
	reBuildPackage    = regexp.MustCompile(`(?i)\bfind_package\s*\(\s*([\w.+-]+)`)
	reBuildVariable   = regexp.MustCompile(`\bset\s*\(\s*([A-Z][A-Z0-9_]+)`)
)

// buildTargetPatterns pair a pattern with the label prefixed to the captured
// name, e.g. add_executable(app ...) becomes "executable: app".
var buildTargetPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{reBuildProject, "project"},
	{reBuildExecutable, "executable"},
	{reBuildLibrary, "library"},
	{reBuildSubdir, "subdirectory"},
	{reBuildPackage, "package"},
}

// stripBuildComments blanks everything from '#' to end of line while
// preserving line structure, so byte offsets into the result still map to
// the original line numbers.
func stripBuildComments(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// offsetToLine converts a byte offset into a 1-based line number by
// accumulating line lengths until the offset is exceeded.
func offsetToLine(text string, offset int) int {
	line := 1
	total := 0
	for _, l := range strings.Split(text, "\n") {
		total += len(l) + 1
		if offset < total {
			return line
		}
		line++
	}
	return line - 1
}

// ExtractBuildSymbols scans CMake content for target declarations and
// upper-case variable assignments, in source order, capped at limit.
// Repeated assignments to the same variable collapse to one symbol.
func ExtractBuildSymbols(content string, limit int) []Symbol {
	text := stripBuildComments(content)
	var symbols []Symbol

	for _, p := range buildTargetPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			name := text[loc[2]:loc[3]]
			symbols = append(symbols, Symbol{
				Name: p.label + ": " + name,
				Line: offsetToLine(text, loc[0]),
				Kind: SymbolKindTarget,
			})
		}
	}

	seenVars := make(map[string]bool)
	for _, loc := range reBuildVariable.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		if seenVars[name] {
			continue
		}
		seenVars[name] = true
		symbols = append(symbols, Symbol{
			Name: name,
			Line: offsetToLine(text, loc[0]),
			Kind: SymbolKindVariable,
		})
	}

	sort.SliceStable(symbols, func(i, j int) bool { return symbols[i].Line < symbols[j].Line })
	if len(symbols) > limit {
		symbols = symbols[:limit]
	}
	return symbols
}
