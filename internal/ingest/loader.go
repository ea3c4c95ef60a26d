// Package ingest materializes a project directory into the ordered
// (path, decoded text) collection the analysis core consumes. It is the
// only asynchronous boundary of the pipeline: files are read with bounded
// concurrency, but the returned corpus is ordered and immutable.
package ingest

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/codeatlas/internal/graph"
)

// maxFileSize guards against pathological inputs; anything larger is
// skipped, matching the best-effort philosophy of the analysis itself.
const maxFileSize = 2 << 20

const defaultConcurrency = 8

// Options configures a corpus load.
type Options struct {
	// ExcludeDirs are additional directory names to skip, on top of the
	// classifier's built-in hidden/build-output rules.
	ExcludeDirs []string

	// Concurrency bounds parallel file reads. Zero means a small default.
	Concurrency int

	Logger *slog.Logger
}

// LoadCorpus walks root and returns the readable text files beneath it as
// root-relative SourceFiles, in walk (lexical) order. Directories the
// classifier would drop are never descended into, and a .gitignore at root
// is honored. Unreadable or binary files are skipped silently: the corpus
// is best-effort, like everything downstream of it.
func LoadCorpus(ctx context.Context, root string, opts Options) ([]graph.SourceFile, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	exclude := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		exclude[d] = true
	}

	var matcher *gitignore.GitIgnore
	if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher = gi
	}

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, skip
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if graph.SkipDirSegment(d.Name()) || exclude[d.Name()] {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read concurrently into an index-addressed slice so the corpus keeps
	// its deterministic walk order.
	texts := make([]*string, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	eg.SetLimit(concurrency)

	for i, rel := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			abs := filepath.Join(root, filepath.FromSlash(rel))
			info, err := os.Stat(abs)
			if err != nil || info.Size() > maxFileSize {
				return nil
			}
			data, err := os.ReadFile(abs)
			if err != nil {
				log.Debug("skipping unreadable file", "path", rel, "err", err)
				return nil
			}
			text := string(data)
			if !utf8.ValidString(text) || strings.ContainsRune(text, 0) {
				return nil // binary
			}
			texts[i] = &text
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	files := make([]graph.SourceFile, 0, len(paths))
	for i, rel := range paths {
		if texts[i] == nil {
			continue
		}
		files = append(files, graph.SourceFile{Path: rel, Text: *texts[i]})
	}
	log.Debug("corpus loaded", "root", root, "files", len(files), "skipped", len(paths)-len(files))
	return files, nil
}
