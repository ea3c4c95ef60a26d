package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dusk-indust/codeatlas/internal/config"
	"github.com/dusk-indust/codeatlas/internal/export"
	"github.com/dusk-indust/codeatlas/internal/graph"
	"github.com/dusk-indust/codeatlas/internal/ingest"
	"github.com/dusk-indust/codeatlas/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Root     string
	Out      string
	Mermaid  string
	Database string
	ServeMCP bool
	Verbose  bool
	Version  bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("codeatlas", flag.ContinueOnError)
	fs.StringVar(&flags.Root, "root", ".", "project directory to analyze")
	fs.StringVar(&flags.Out, "out", "", "write the graph as JSON to this path")
	fs.StringVar(&flags.Mermaid, "mermaid", "", "write a Mermaid diagram to this path")
	fs.StringVar(&flags.Database, "db", "", "persist the graph to a KuzuDB at this path")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.Root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if flags.Verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx := context.Background()

	if flags.ServeMCP {
		server := mcptools.NewAtlasMCPServer(cfg.Options())
		return mcptools.RunAtlasMCPServerStdio(ctx, server)
	}

	files, err := ingest.LoadCorpus(ctx, flags.Root, ingest.Options{
		ExcludeDirs: cfg.ExcludeDirs,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	g := graph.BuildGraph(files, cfg.Options())
	log.Info("analysis complete", "units", len(g.Nodes), "edges", len(g.Links))

	outPath := flags.Out
	if outPath == "" {
		outPath = cfg.OutputPath
	}
	if outPath != "" {
		if err := export.WriteGraphJSON(g, outPath); err != nil {
			return err
		}
		log.Info("graph written", "path", outPath)
	}

	if flags.Mermaid != "" {
		if err := os.WriteFile(flags.Mermaid, []byte(export.Mermaid(g)), 0o644); err != nil {
			return fmt.Errorf("write mermaid: %w", err)
		}
	}

	dbPath := flags.Database
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	if dbPath != "" {
		if err := persistGraph(ctx, g, dbPath); err != nil {
			return err
		}
		log.Info("graph persisted", "db", dbPath)
	}

	if outPath == "" && flags.Mermaid == "" && dbPath == "" {
		return export.EncodeGraph(g, os.Stdout)
	}
	return nil
}

func persistGraph(ctx context.Context, g *graph.Graph, dbPath string) error {
	store, err := graph.NewKuzuFileStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	return store.SaveGraph(ctx, g)
}
