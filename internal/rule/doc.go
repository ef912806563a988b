// Package rule implements tiling rules and the neighbor match evaluator.
//
// A Rule is an ordered list of (offset, condition) pairs plus an output
// descriptor. Matches tests the pairs against the grid around a position,
// trying the identity first and then the symmetry transforms allowed by the
// rule's MatchMode. Coordinate transforms depend on the grid topology: Rect
// covers rectangular and isometric grids, Hex covers offset-row hexagonal
// grids.
package rule
