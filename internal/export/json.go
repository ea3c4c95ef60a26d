// Package export renders an analysis graph for external consumers: the
// verbatim JSON blob the viewer persists, and a Mermaid diagram for quick
// inspection.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dusk-indust/codeatlas/internal/graph"
)

// EncodeGraph writes g to w as indented JSON in the canonical
// {nodes, links} shape.
func EncodeGraph(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("export: encode graph: %w", err)
	}
	return nil
}

// WriteGraphJSON writes g to path, replacing any existing file atomically
// via a temp-file rename so a crashed export never leaves a torn blob.
func WriteGraphJSON(g *graph.Graph, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".codeatlas-graph-*.json")
	if err != nil {
		return fmt.Errorf("export: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeGraph(g, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: replace %s: %w", path, err)
	}
	return nil
}

// DecodeGraph reads a previously exported graph back from r.
func DecodeGraph(r io.Reader) (*graph.Graph, error) {
	var g graph.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("export: decode graph: %w", err)
	}
	return &g, nil
}
