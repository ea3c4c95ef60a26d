package graph

import (
	"regexp"
	"strings"
)

// GLSL declarations are strictly line-oriented in practice, so the shader
// extractor anchors every pattern to the start of a line and requires the
// terminating semicolon for interface declarations. Version/extension
// directives and comments are skipped.
var (
	reShaderUniform = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:lowp\s+|mediump\s+|highp\s+)?\w+\s+(\w+)\s*(?:\[[^\]]*\]\s*)?(?:=[^;]*)?;`)
	reShaderInput   = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(?:attribute|in)\s+(?:lowp\s+|mediump\s+|highp\s+)?\w+\s+(\w+)\s*(?:\[[^\]]*\]\s*)?;`)
	reShaderOutput  = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(?:varying|out)\s+(?:lowp\s+|mediump\s+|highp\s+)?\w+\s+(\w+)\s*(?:\[[^\]]*\]\s*)?;`)
	reShaderFunc    = regexp.MustCompile(`^\s*(?:void|float|double|int|uint|bool|[ibud]?vec[234]|mat[234](?:x[234])?)\s+(\w+)\s*\(`)
)

var shaderDeclPatterns = []*regexp.Regexp{reShaderUniform, reShaderInput, reShaderOutput}

// ExtractShaderSymbols scans GLSL content for uniform, input, output and
// function declarations, in source order, capped at limit.
func ExtractShaderSymbols(content string, limit int) []Symbol {
	var symbols []Symbol
	for i, line := range strings.Split(content, "\n") {
		if len(symbols) >= limit {
			break
		}
		trimmed := strings.TrimSpace(line)
		if skipNativeLine(trimmed) {
			continue
		}

		matched := false
		for _, re := range shaderDeclPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				symbols = append(symbols, Symbol{Name: m[1], Line: i + 1, Kind: SymbolKindShader})
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if m := reShaderFunc.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{Name: m[1], Line: i + 1, Kind: SymbolKindFunction})
		}
	}
	return symbols
}
