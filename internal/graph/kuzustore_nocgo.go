//go:build !cgo

package graph

import (
	"context"
	"errors"
)

// ErrKuzuUnavailable is returned by the Kuzu constructors in builds without
// CGO, where the KuzuDB driver cannot be linked. Callers fall back to the
// in-memory store or plain JSON export.
var ErrKuzuUnavailable = errors.New("kuzu: persistent store requires a cgo build")

// KuzuStore is a stub in non-cgo builds; every operation fails with
// ErrKuzuUnavailable.
type KuzuStore struct{}

var _ Store = (*KuzuStore)(nil)

func NewKuzuStore() (*KuzuStore, error)           { return nil, ErrKuzuUnavailable }
func NewKuzuFileStore(string) (*KuzuStore, error) { return nil, ErrKuzuUnavailable }

func (*KuzuStore) InitSchema(context.Context) error          { return ErrKuzuUnavailable }
func (*KuzuStore) SaveGraph(context.Context, *Graph) error   { return ErrKuzuUnavailable }
func (*KuzuStore) LoadGraph(context.Context) (*Graph, error) { return nil, ErrKuzuUnavailable }
func (*KuzuStore) Stats(context.Context) (*GraphStats, error) {
	return nil, ErrKuzuUnavailable
}
func (*KuzuStore) Close() error { return nil }
