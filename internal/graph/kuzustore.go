//go:build cgo

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend. It requires CGO because the go-kuzu driver wraps KuzuDB's C
// library.
//
// The symbol list of each unit is stored as an opaque JSON string: the
// store's contract is verbatim round-tripping of the graph value, not
// querying inside symbols.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given path, so a saved graph survives across sessions. KuzuDB creates the
// leaf directory itself for new databases.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(dbPath string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema. The node
// table must precede the relationship table.
// The ord columns record insertion order so LoadGraph can restore the exact
// node and edge order the graph was saved with.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Unit(
		id STRING,
		name STRING,
		category STRING,
		grp STRING,
		text STRING,
		symbols STRING,
		metrics STRING,
		x DOUBLE,
		y DOUBLE,
		has_pos BOOLEAN,
		height DOUBLE,
		ord INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON(FROM Unit TO Unit, reason STRING, ord INT64)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Store operations ----------

// SaveGraph replaces the stored graph: everything previously persisted is
// deleted, then the new nodes and edges are inserted.
func (s *KuzuStore) SaveGraph(_ context.Context, g *Graph) error {
	if err := s.exec("MATCH (n:Unit) DETACH DELETE n", nil); err != nil {
		return err
	}

	for i, n := range g.Nodes {
		symbols, err := json.Marshal(n.Symbols)
		if err != nil {
			return fmt.Errorf("kuzu: encode symbols for %s: %w", n.ID, err)
		}
		metrics := ""
		if n.Metrics != nil {
			raw, err := json.Marshal(n.Metrics)
			if err != nil {
				return fmt.Errorf("kuzu: encode metrics for %s: %w", n.ID, err)
			}
			metrics = string(raw)
		}
		var x, y float64
		hasPos := n.X != nil && n.Y != nil
		if hasPos {
			x, y = *n.X, *n.Y
		}
		err = s.exec(
			`CREATE (u:Unit {
				id: $id, name: $name, category: $category, grp: $grp,
				text: $text, symbols: $symbols, metrics: $metrics,
				x: $x, y: $y, has_pos: $has_pos, height: $height, ord: $ord
			})`,
			map[string]any{
				"id":       n.ID,
				"name":     n.Name,
				"category": string(n.Category),
				"grp":      n.Group,
				"text":     n.Text,
				"symbols":  string(symbols),
				"metrics":  metrics,
				"x":        x,
				"y":        y,
				"has_pos":  hasPos,
				"height":   n.Height,
				"ord":      int64(i),
			},
		)
		if err != nil {
			return err
		}
	}

	for i, e := range g.Links {
		err := s.exec(
			`MATCH (a:Unit {id: $src}), (b:Unit {id: $dst})
			 CREATE (a)-[:DEPENDS_ON {reason: $reason, ord: $ord}]->(b)`,
			map[string]any{
				"src":    e.Source,
				"dst":    e.Target,
				"reason": string(e.Reason),
				"ord":    int64(i),
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadGraph restores the stored graph in its original node and edge order,
// so a save/load cycle reproduces the saved value exactly.
func (s *KuzuStore) LoadGraph(_ context.Context) (*Graph, error) {
	g := &Graph{}

	rows, err := s.query(
		`MATCH (u:Unit)
		 RETURN u.id, u.name, u.category, u.grp, u.text, u.symbols, u.metrics,
		        u.x, u.y, u.has_pos, u.height
		 ORDER BY u.ord`,
		nil,
	)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		n := &SourceUnit{
			ID:       toString(r[0]),
			Name:     toString(r[1]),
			Category: Category(toString(r[2])),
			Group:    toString(r[3]),
			Text:     toString(r[4]),
			Height:   toFloat64(r[10]),
		}
		if raw := toString(r[5]); raw != "" {
			if err := json.Unmarshal([]byte(raw), &n.Symbols); err != nil {
				return nil, fmt.Errorf("kuzu: decode symbols for %s: %w", n.ID, err)
			}
		}
		if raw := toString(r[6]); raw != "" {
			n.Metrics = &UnitMetrics{}
			if err := json.Unmarshal([]byte(raw), n.Metrics); err != nil {
				return nil, fmt.Errorf("kuzu: decode metrics for %s: %w", n.ID, err)
			}
		}
		if toBool(r[9]) {
			x, y := toFloat64(r[7]), toFloat64(r[8])
			n.X, n.Y = &x, &y
		}
		g.Nodes = append(g.Nodes, n)
	}

	edgeRows, err := s.query(
		`MATCH (a:Unit)-[d:DEPENDS_ON]->(b:Unit)
		 RETURN a.id, b.id, d.reason
		 ORDER BY d.ord`,
		nil,
	)
	if err != nil {
		return nil, err
	}
	for _, r := range edgeRows {
		g.Links = append(g.Links, Edge{
			Source: toString(r[0]),
			Target: toString(r[1]),
			Reason: EdgeReason(toString(r[2])),
		})
	}
	return g, nil
}

// Stats returns counts for the stored graph.
func (s *KuzuStore) Stats(ctx context.Context) (*GraphStats, error) {
	units, err := s.countQuery("MATCH (n:Unit) RETURN count(n)")
	if err != nil {
		return nil, err
	}
	edges, err := s.countQuery("MATCH ()-[d:DEPENDS_ON]->() RETURN count(d)")
	if err != nil {
		return nil, err
	}

	// Symbol counts live inside the opaque symbols blob, so they are
	// recovered by loading the graph.
	g, err := s.LoadGraph(ctx)
	if err != nil {
		return nil, err
	}
	symbols := 0
	for _, n := range g.Nodes {
		symbols += len(n.Symbols)
	}

	return &GraphStats{UnitCount: units, EdgeCount: edges, SymbolCount: symbols}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	if len(params) == 0 {
		res, err := s.conn.Query(cypher)
		if err != nil {
			return fmt.Errorf("kuzu: query: %w", err)
		}
		res.Close()
		return nil
	}

	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func (s *KuzuStore) countQuery(cypher string) (int, error) {
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// ---------- Value coercion ----------

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}
