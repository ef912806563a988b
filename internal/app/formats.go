package app

import (
	"maps"
	"slices"

	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/hcl"
	"github.com/vk/tilesmith/internal/yamlasset"
)

// loaders is the definitive list of asset formats compiled into the binary.
var loaders = map[string]func() config.Loader{
	"hcl":  func() config.Loader { return hcl.NewLoader() },
	"yaml": func() config.Loader { return yamlasset.NewLoader() },
}

// Formats lists the supported asset formats.
func Formats() []string {
	return slices.Sorted(maps.Keys(loaders))
}

// NewLoader returns the loader for format, or nil if there is none.
func NewLoader(format string) config.Loader {
	if f, ok := loaders[format]; ok {
		return f()
	}
	return nil
}
