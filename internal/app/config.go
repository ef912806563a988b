package app

import (
	"errors"
	"fmt"
	"slices"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	AssetsPath string // .hcl or .yaml files
	Format     string

	LogFormat string
	LogLevel  string
	Workers   int
	ChunkSize int

	ExportPath string // optional; the loaded model is written back as HCL
	NoColor    bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.AssetsPath == "" {
		return nil, errors.New("AssetsPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = "hcl"
	}
	if _, ok := loaders[cfg.Format]; !ok {
		return nil, fmt.Errorf("unknown asset format %q: must be one of %v", cfg.Format, Formats())
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must not be negative, got %d", cfg.ChunkSize)
	}
	if cfg.LogFormat != "" && !slices.Contains([]string{"text", "json"}, cfg.LogFormat) {
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return &cfg, nil
}
