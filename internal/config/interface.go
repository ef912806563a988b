package config

import (
	"context"
	"io"
)

// Loader is the interface for a format-specific asset loader.
type Loader interface {
	// Load reads every asset file under paths, translates it into the
	// format-agnostic model and merges the results.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Writer serializes a model into a format its Loader reads back.
type Writer interface {
	Write(ctx context.Context, m *Model, w io.Writer) error
}
