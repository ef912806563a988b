// Package tile defines what the engine produces for a cell (Data,
// AnimationData), the handler contract every tile type implements, and the
// descriptor-based override schema used when deriving tile variants.
package tile
