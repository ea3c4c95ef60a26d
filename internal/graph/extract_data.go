package graph

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const dataPreviewLen = 20

var reQuotedKey = regexp.MustCompile(`^\s*"([^"]+)"\s*:`)

// ExtractDataSymbols extracts keys from JSON content. It first attempts a
// full tree parse and walks the result to depth 2; if the content is not
// valid JSON it silently falls back to a line-anchored quoted-key scan.
// Either way the result is capped at limit — never an error.
func ExtractDataSymbols(content string, limit int) []Symbol {
	var root any
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return scanQuotedKeys(content, limit)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		// Valid JSON but no top-level keys (array or scalar).
		return nil
	}

	var symbols []Symbol
	for _, key := range sortedKeys(obj) {
		if len(symbols) >= limit {
			break
		}
		keyOffset := keyPosition(content, key, 0)
		symbols = append(symbols, Symbol{
			Name: key + ": " + formatDataValue(obj[key]),
			Line: offsetToLine(content, keyOffset),
			Kind: SymbolKindDataKey,
		})

		// Depth 2: one symbol per nested key, dotted.
		inner, ok := obj[key].(map[string]any)
		if !ok {
			continue
		}
		for _, sub := range sortedKeys(inner) {
			if len(symbols) >= limit {
				break
			}
			symbols = append(symbols, Symbol{
				Name: key + "." + sub + ": " + formatDataValue(inner[sub]),
				Line: offsetToLine(content, keyPosition(content, sub, keyOffset)),
				Kind: SymbolKindDataKey,
			})
		}
	}
	return symbols
}

// scanQuotedKeys is the fallback for unparseable content: any line that
// starts with a quoted key followed by a colon contributes one symbol.
func scanQuotedKeys(content string, limit int) []Symbol {
	var symbols []Symbol
	for i, line := range strings.Split(content, "\n") {
		if len(symbols) >= limit {
			break
		}
		if m := reQuotedKey.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, Symbol{Name: m[1], Line: i + 1, Kind: SymbolKindDataKey})
		}
	}
	return symbols
}

// keyPosition finds the byte offset of the quoted key at or after from.
// Unlocatable keys map to offset 0, i.e. line 1.
func keyPosition(content, key string, from int) int {
	if from < 0 || from > len(content) {
		from = 0
	}
	idx := strings.Index(content[from:], `"`+key+`"`)
	if idx < 0 {
		return 0
	}
	return from + idx
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatDataValue renders a parsed JSON value for symbol display: objects
// abbreviate, arrays show element count, scalars preview with truncation.
func formatDataValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		return "{...}"
	case []any:
		return fmt.Sprintf("[%d items]", len(val))
	case string:
		return truncatePreview(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	default:
		return truncatePreview(fmt.Sprintf("%v", val))
	}
}

func truncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= dataPreviewLen {
		return s
	}
	return string(runes[:dataPreviewLen]) + "..."
}
