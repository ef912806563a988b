package mask

import "github.com/vk/tilesmith/internal/grid"

// Center is the raw mask bit of the evaluated cell itself.
const Center uint32 = 1 << 4

// shape is one canonical 3x3 blob shape and every raw mask that reduces to it.
type shape struct {
	name      string
	canonical uint32
	raw       []uint32
}

// shapes enumerates the 3x3 reduction. Raw masks that appear nowhere in this
// list pass through unchanged.
var shapes = []shape{
	{"left", 16 + 32, []uint32{
		1 + 16 + 32,
		4 + 16 + 32,
		16 + 32 + 64,
		16 + 32 + 256,
		1 + 16 + 32 + 64,
		4 + 16 + 32 + 256,
		1 + 4 + 16 + 32,
		1 + 16 + 32 + 256,
		4 + 16 + 32 + 64,
		16 + 32 + 64 + 256,
		1 + 16 + 32 + 64 + 256,
		1 + 4 + 16 + 32 + 64,
		1 + 4 + 16 + 32 + 256,
		4 + 16 + 32 + 64 + 256,
		1 + 4 + 16 + 32 + 64 + 256,
	}},
	{"right", 8 + 16, []uint32{
		1 + 8 + 16,
		8 + 16 + 64,
		1 + 8 + 16 + 64,
		4 + 8 + 16,
		8 + 16 + 256,
		1 + 4 + 8 + 16,
		1 + 8 + 16 + 256,
		4 + 8 + 16 + 64,
		4 + 8 + 16 + 256,
		8 + 16 + 64 + 256,
		1 + 4 + 8 + 16 + 64,
		1 + 4 + 8 + 16 + 256,
		1 + 8 + 16 + 64 + 256,
		4 + 8 + 16 + 64 + 256,
		1 + 4 + 8 + 16 + 64 + 256,
	}},
	{"top", 2 + 16, []uint32{
		1 + 2 + 16,
		2 + 4 + 16,
		1 + 2 + 4 + 16,
		2 + 16 + 64,
		2 + 16 + 256,
		2 + 16 + 64 + 256,
		1 + 2 + 16 + 64,
		1 + 2 + 16 + 256,
		1 + 2 + 16 + 64 + 256,
		2 + 4 + 16 + 64,
		2 + 4 + 16 + 256,
		2 + 4 + 16 + 64 + 256,
		1 + 2 + 4 + 16 + 64,
		1 + 2 + 4 + 16 + 256,
		1 + 2 + 4 + 16 + 64 + 256,
	}},
	{"bottom", 16 + 128, []uint32{
		16 + 64 + 128,
		16 + 128 + 256,
		16 + 64 + 128 + 256,
		1 + 16 + 64 + 128,
		4 + 16 + 64 + 128,
		1 + 4 + 16 + 64 + 128,
		1 + 16 + 128 + 256,
		4 + 16 + 128 + 256,
		1 + 4 + 16 + 128 + 256,
		1 + 16 + 64 + 128 + 256,
		4 + 16 + 64 + 128 + 256,
		1 + 4 + 16 + 64 + 128 + 256,
		1 + 16 + 128,
		4 + 16 + 128,
		1 + 4 + 16 + 128,
	}},
	{"vertical straight", 2 + 16 + 128, []uint32{
		1 + 2 + 16 + 128,
		2 + 4 + 16 + 128,
		1 + 2 + 4 + 16 + 128,
		2 + 16 + 64 + 128,
		2 + 16 + 128 + 256,
		2 + 16 + 64 + 128 + 256,
		1 + 2 + 16 + 64 + 128,
		1 + 2 + 16 + 128 + 256,
		2 + 4 + 16 + 64 + 128,
		2 + 4 + 16 + 128 + 256,
		1 + 2 + 16 + 64 + 128 + 256,
		1 + 2 + 4 + 64 + 128 + 256,
		1 + 2 + 4 + 16 + 128 + 256,
		1 + 2 + 4 + 16 + 64 + 128,
		2 + 4 + 16 + 64 + 128 + 256,
		1 + 2 + 4 + 16 + 64 + 128 + 256,
	}},
	{"horizontal straight", 8 + 16 + 32, []uint32{
		1 + 8 + 16 + 32,
		8 + 16 + 32 + 64,
		1 + 8 + 16 + 32 + 64,
		4 + 8 + 16 + 32,
		8 + 16 + 32 + 256,
		4 + 8 + 16 + 32 + 64,
		4 + 8 + 16 + 32 + 256,
		1 + 4 + 8 + 16 + 32,
		1 + 8 + 16 + 32 + 256,
		8 + 16 + 32 + 64 + 256,
		1 + 4 + 8 + 16 + 32 + 64,
		1 + 4 + 8 + 16 + 32 + 256,
		1 + 8 + 16 + 32 + 64 + 256,
		4 + 8 + 16 + 32 + 64 + 256,
		1 + 4 + 8 + 16 + 32 + 64 + 256,
	}},
	{"top left corner", 2 + 4 + 16 + 32, []uint32{
		1 + 2 + 4 + 16 + 32,
		2 + 4 + 16 + 32 + 256,
		2 + 4 + 16 + 32 + 64,
		1 + 2 + 4 + 16 + 32 + 256,
		1 + 2 + 4 + 16 + 32 + 64,
		2 + 4 + 16 + 32 + 64 + 256,
		1 + 2 + 4 + 16 + 32 + 64 + 256,
	}},
	{"bottom left corner", 16 + 32 + 128 + 256, []uint32{
		1 + 16 + 32 + 128 + 256,
		4 + 16 + 32 + 128 + 256,
		16 + 32 + 64 + 128 + 256,
		4 + 16 + 32 + 64 + 128 + 256,
		1 + 4 + 16 + 32 + 128 + 256,
		1 + 16 + 32 + 64 + 128 + 256,
		1 + 4 + 16 + 32 + 64 + 128 + 256,
	}},
	{"top right corner", 1 + 2 + 8 + 16, []uint32{
		1 + 2 + 4 + 8 + 16,
		1 + 2 + 8 + 16 + 64,
		1 + 2 + 8 + 16 + 256,
		1 + 2 + 4 + 8 + 16 + 64,
		1 + 2 + 8 + 16 + 64 + 256,
		1 + 2 + 4 + 8 + 16 + 256,
		1 + 2 + 4 + 8 + 16 + 64 + 256,
	}},
	{"bottom right corner", 8 + 16 + 64 + 128, []uint32{
		1 + 8 + 16 + 64 + 128,
		8 + 16 + 64 + 128 + 256,
		4 + 8 + 16 + 64 + 128,
		1 + 4 + 8 + 16 + 64 + 128,
		1 + 8 + 16 + 64 + 128 + 256,
		4 + 8 + 16 + 64 + 128 + 256,
		1 + 4 + 8 + 16 + 64 + 128 + 256,
	}},
	{"full top", 1 + 2 + 4 + 8 + 16 + 32, []uint32{
		1 + 2 + 4 + 8 + 16 + 32 + 64,
		1 + 2 + 4 + 8 + 16 + 32 + 256,
		1 + 2 + 4 + 8 + 16 + 32 + 64 + 256,
	}},
	{"full bottom", 8 + 16 + 32 + 64 + 128 + 256, []uint32{
		1 + 8 + 16 + 32 + 64 + 128 + 256,
		4 + 8 + 16 + 32 + 64 + 128 + 256,
		1 + 4 + 8 + 16 + 32 + 64 + 128 + 256,
	}},
	{"full left", 2 + 4 + 16 + 32 + 128 + 256, []uint32{
		1 + 2 + 4 + 16 + 32 + 128 + 256,
		2 + 4 + 16 + 32 + 64 + 128 + 256,
		1 + 2 + 4 + 16 + 32 + 64 + 128 + 256,
	}},
	{"full right", 1 + 2 + 8 + 16 + 64 + 128, []uint32{
		1 + 2 + 4 + 8 + 16 + 64 + 128,
		1 + 2 + 8 + 16 + 64 + 128 + 256,
		1 + 2 + 4 + 8 + 16 + 64 + 128 + 256,
	}},
	{"top left tricorner", 2 + 16 + 32, []uint32{
		1 + 2 + 16 + 32,
		2 + 16 + 32 + 64,
		2 + 16 + 32 + 256,
		1 + 2 + 16 + 32 + 64,
		1 + 2 + 16 + 32 + 256,
		2 + 16 + 32 + 64 + 256,
		1 + 2 + 16 + 32 + 64 + 256,
	}},
	{"bottom left tricorner", 16 + 32 + 128, []uint32{
		1 + 16 + 32 + 128,
		4 + 16 + 32 + 128,
		16 + 32 + 64 + 128,
		4 + 16 + 32 + 64 + 128,
		1 + 16 + 32 + 64 + 128,
		1 + 4 + 16 + 32 + 64 + 128,
		1 + 4 + 16 + 32 + 128,
	}},
	{"top right tricorner", 2 + 8 + 16, []uint32{
		2 + 4 + 8 + 16,
		2 + 8 + 16 + 64,
		2 + 8 + 16 + 256,
		2 + 4 + 8 + 16 + 64,
		2 + 8 + 16 + 64 + 256,
		2 + 4 + 8 + 16 + 256,
		2 + 4 + 8 + 16 + 64 + 256,
	}},
	{"bottom right tricorner", 8 + 16 + 128, []uint32{
		1 + 8 + 16 + 128,
		4 + 8 + 16 + 128,
		8 + 16 + 128 + 256,
		1 + 8 + 16 + 128 + 256,
		1 + 4 + 8 + 16 + 128,
		4 + 8 + 16 + 128 + 256,
		1 + 4 + 8 + 16 + 128 + 256,
	}},
	{"three-way left", 2 + 8 + 16 + 128, []uint32{
		2 + 4 + 8 + 16 + 128,
		2 + 8 + 16 + 128 + 256,
		2 + 4 + 8 + 16 + 128 + 256,
	}},
	{"three-way right", 2 + 16 + 32 + 128, []uint32{
		1 + 2 + 16 + 32 + 128,
		2 + 16 + 32 + 64 + 128,
		1 + 2 + 16 + 32 + 64 + 128,
	}},
	{"three-way top", 8 + 16 + 32 + 128, []uint32{
		1 + 8 + 16 + 32 + 128,
		4 + 8 + 16 + 32 + 128,
		1 + 4 + 8 + 16 + 32 + 128,
	}},
	{"three-way bottom", 2 + 8 + 16 + 32, []uint32{
		2 + 8 + 16 + 32 + 64,
		2 + 8 + 16 + 32 + 256,
		2 + 8 + 16 + 32 + 64 + 256,
	}},
	{"three-corner top left", 2 + 4 + 8 + 16 + 32, []uint32{
		2 + 4 + 8 + 16 + 32 + 64,
		2 + 4 + 8 + 16 + 32 + 256,
		2 + 4 + 8 + 16 + 32 + 64 + 256,
	}},
	{"three-corner bottom left", 8 + 16 + 32 + 128 + 256, []uint32{
		1 + 8 + 16 + 32 + 128 + 256,
		4 + 8 + 16 + 32 + 128 + 256,
		1 + 4 + 8 + 16 + 32 + 128 + 256,
	}},
	{"three-corner top right", 1 + 2 + 8 + 16 + 32, []uint32{
		1 + 2 + 8 + 16 + 32 + 64,
		1 + 2 + 8 + 16 + 32 + 256,
		1 + 2 + 8 + 16 + 32 + 64 + 256,
	}},
	{"three-corner bottom right", 8 + 16 + 32 + 64 + 128, []uint32{
		1 + 8 + 16 + 32 + 64 + 128,
		4 + 8 + 16 + 32 + 64 + 128,
		1 + 4 + 8 + 16 + 32 + 64 + 128,
	}},
	{"left side top right corner", 2 + 4 + 16 + 32 + 128, []uint32{
		1 + 2 + 4 + 16 + 32 + 128,
		2 + 4 + 16 + 32 + 64 + 128,
		1 + 2 + 4 + 16 + 32 + 64 + 128,
	}},
	{"left side bottom right corner", 2 + 16 + 32 + 128 + 256, []uint32{
		1 + 2 + 16 + 32 + 128 + 256,
		2 + 16 + 32 + 64 + 128 + 256,
		1 + 2 + 16 + 32 + 64 + 128 + 256,
	}},
	{"right side top left corner", 1 + 2 + 8 + 16 + 128, []uint32{
		1 + 2 + 4 + 8 + 16 + 128,
		1 + 2 + 8 + 16 + 128 + 256,
		1 + 2 + 4 + 8 + 16 + 128 + 256,
	}},
	{"right side bottom left corner", 2 + 8 + 16 + 64 + 128, []uint32{
		2 + 4 + 8 + 16 + 64 + 128,
		2 + 8 + 16 + 64 + 128 + 256,
		2 + 4 + 8 + 16 + 64 + 128 + 256,
	}},
	{"single", 16, []uint32{
		1 + 16,
		4 + 16,
		16 + 64,
		16 + 256,
		1 + 4 + 16,
		1 + 16 + 64,
		1 + 16 + 256,
		4 + 16 + 64,
		4 + 16 + 256,
		16 + 64 + 256,
		1 + 4 + 16 + 64,
		1 + 4 + 16 + 256,
		1 + 16 + 64 + 256,
		4 + 16 + 64 + 256,
		1 + 4 + 16 + 64 + 256,
	}},
}

var (
	table2x2 [1 << 9]uint8
	table3x3 [1 << 9]uint16
)

func init() {
	for raw := range table2x2 {
		table2x2[raw] = convert2x2(uint32(raw))
	}
	for raw := range table3x3 {
		table3x3[raw] = uint16(raw)
	}
	seen := make(map[uint32]string)
	for _, s := range shapes {
		for _, raw := range s.raw {
			if prev, dup := seen[raw]; dup {
				panic("mask: raw mask listed under both " + prev + " and " + s.name)
			}
			seen[raw] = s.name
			table3x3[raw] = uint16(s.canonical)
		}
	}
}

// convert2x2 sets one corner bit per diagonal triple:
//
//	4 8
//	1 2
func convert2x2(raw uint32) uint8 {
	var out uint8
	if raw&(1<<0) != 0 && raw&(1<<1) != 0 && raw&(1<<3) != 0 {
		out |= 1 << 0
	}
	if raw&(1<<1) != 0 && raw&(1<<2) != 0 && raw&(1<<5) != 0 {
		out |= 1 << 1
	}
	if raw&(1<<3) != 0 && raw&(1<<6) != 0 && raw&(1<<7) != 0 {
		out |= 1 << 2
	}
	if raw&(1<<5) != 0 && raw&(1<<7) != 0 && raw&(1<<8) != 0 {
		out |= 1 << 3
	}
	return out
}

// Reduce maps a raw mask to its canonical mask for mode. Bits above bit 8 are
// ignored.
//
// In 2x2 mode a value without the center bit that already fits in four bits
// is treated as canonical, which keeps Reduce idempotent: sampled masks always
// carry the center bit, canonical 2x2 masks never do.
func Reduce(raw uint32, mode Mode) uint32 {
	raw &= 1<<9 - 1
	switch mode {
	case Mode2x2:
		if raw&Center == 0 && raw <= Mode2x2.Max() {
			return raw
		}
		return uint32(table2x2[raw])
	default:
		return uint32(table3x3[raw])
	}
}

// FromBlock builds the raw mask of a 3x3 block, row-major with the bottom row
// first, setting bit i when block[i] equals self.
func FromBlock(block []grid.Identity, self grid.Identity) uint32 {
	var raw uint32
	for i, id := range block {
		if i >= 9 {
			break
		}
		if id == self {
			raw |= 1 << i
		}
	}
	return raw
}

// Block3x3 is the neighborhood FromBlock expects.
var Block3x3 = grid.Bounds{XMin: -1, YMin: -1, XMax: 1, YMax: 1}

// Unmapped3x3 lists the center-carrying raw masks the 3x3 reduction leaves
// unchanged even though they are not canonical shapes. Autotile tables may end
// up keyed by these values.
func Unmapped3x3() []uint32 {
	canonical := make(map[uint32]bool, len(shapes))
	for _, s := range shapes {
		canonical[s.canonical] = true
	}
	var out []uint32
	for raw := uint32(0); raw < 1<<9; raw++ {
		if raw&Center == 0 || canonical[raw] {
			continue
		}
		if uint32(table3x3[raw]) == raw {
			out = append(out, raw)
		}
	}
	return out
}

// ShapeName returns the name of the canonical 3x3 shape m, or "" when m is
// not canonical.
func ShapeName(m uint32) string {
	for _, s := range shapes {
		if s.canonical == m {
			return s.name
		}
	}
	return ""
}
