// Package mask converts raw neighbor occupancy masks into canonical masks.
//
// A raw mask is sampled from the 3x3 block around a cell, row-major with the
// bottom row first:
//
//	64 128 256
//	 8  16  32
//	 1   2   4
//
// Bit 4 (16) is the cell itself and is always set in a sampled mask. The
// canonical mask is the key autotiles use to look up candidate sprites.
package mask
