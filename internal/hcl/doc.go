// Package hcl provides the HCL implementation of the config.Loader and
// config.Writer interfaces. It is responsible for file discovery, parsing,
// decoding into the block schema and translating blocks into the
// format-agnostic model, as well as writing a model back out.
package hcl
