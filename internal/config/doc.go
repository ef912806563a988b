// Package config defines the format-agnostic tile asset model and the
// Loader and Writer interfaces implemented by the concrete asset formats.
//
// The Model is what the tileset package turns into registered tile
// handlers. Concrete formats live in separate packages: hcl for the primary
// format and yamlasset for YAML.
package config
