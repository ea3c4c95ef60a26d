package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/codeatlas/internal/graph"
)

// ProjectConfig holds project-level settings loaded from codeatlas.yml.
type ProjectConfig struct {
	OutputPath   string   `yaml:"outputPath,omitempty"`
	DatabasePath string   `yaml:"databasePath,omitempty"`
	ExcludeDirs  []string `yaml:"excludeDirs,omitempty"`
	MaxSymbols   int      `yaml:"maxSymbols,omitempty"`
	MaxCalls     int      `yaml:"maxCalls,omitempty"`
	MaxDataKeys  int      `yaml:"maxDataKeys,omitempty"`
	LayerGap     float64  `yaml:"layerGap,omitempty"`
	Verbose      bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read codeatlas.yml or codeatlas.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"codeatlas.yml", "codeatlas.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Options maps the config onto analysis options, leaving defaults in place
// for anything unset.
func (c *ProjectConfig) Options() graph.Options {
	opts := graph.DefaultOptions()
	if c.MaxSymbols > 0 {
		opts.MaxSymbols = c.MaxSymbols
	}
	if c.MaxCalls > 0 {
		opts.MaxCalls = c.MaxCalls
	}
	if c.MaxDataKeys > 0 {
		opts.MaxDataKeys = c.MaxDataKeys
	}
	if c.LayerGap > 0 {
		opts.Layout.LayerGap = c.LayerGap
	}
	return opts
}
