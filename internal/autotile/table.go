// Package autotile implements tiles that pick their sprite by looking up the
// canonical adjacency mask of their 3x3 neighborhood in a table.
package autotile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vk/tilesmith/internal/mask"
	"github.com/vk/tilesmith/internal/tile"
)

// DefaultTextureScale is the scale given to textures registered without one.
const DefaultTextureScale = 1.0

// Candidate is one sprite registered under a mask, together with the
// texture it was cut from. An empty texture ties the sprite to no texture.
type Candidate struct {
	Sprite  tile.SpriteID
	Texture tile.TextureID
}

// Table maps canonical masks to ordered candidate lists. It is edited at
// authoring time and read-only while tiles resolve.
type Table struct {
	mode     mask.Mode
	entries  map[uint32][]Candidate
	textures []tile.TextureID
	scales   []float64
}

// NewTable returns an empty table for mode.
func NewTable(mode mask.Mode) *Table {
	return &Table{mode: mode, entries: make(map[uint32][]Candidate)}
}

func (t *Table) Mode() mask.Mode { return t.mode }

// SetMode switches the mask mode. Entries that no longer fit are kept until
// Validate.
func (t *Table) SetMode(m mask.Mode) { t.mode = m }

// AddCandidate appends sprite under m. Adding a sprite already listed under m
// does nothing. A mask outside the mode's range is rejected with a
// *mask.MaskRangeError and the table is left untouched.
func (t *Table) AddCandidate(m uint32, sprite tile.SpriteID, texture tile.TextureID) error {
	if err := mask.CheckRange(m, t.mode); err != nil {
		return err
	}
	list := t.entries[m]
	if slices.ContainsFunc(list, func(c Candidate) bool { return c.Sprite == sprite }) {
		return nil
	}
	t.entries[m] = append(list, Candidate{Sprite: sprite, Texture: texture})
	return nil
}

// RemoveCandidate drops sprite from m. The key stays, possibly empty, until
// Prune.
func (t *Table) RemoveCandidate(m uint32, sprite tile.SpriteID) {
	list, ok := t.entries[m]
	if !ok {
		return
	}
	i := slices.IndexFunc(list, func(c Candidate) bool { return c.Sprite == sprite })
	if i < 0 {
		return
	}
	t.entries[m] = slices.Delete(list, i, i+1)
}

// Prune deletes keys with no candidates and returns how many were removed.
func (t *Table) Prune() int {
	n := 0
	for m, list := range t.entries {
		if len(list) == 0 {
			delete(t.entries, m)
			n++
		}
	}
	return n
}

// Candidates returns a copy of the candidates under m.
func (t *Table) Candidates(m uint32) []Candidate {
	return slices.Clone(t.entries[m])
}

// Masks returns every key, empty ones included, in ascending order.
func (t *Table) Masks() []uint32 {
	return slices.Sorted(maps.Keys(t.entries))
}

// Entries returns a deep copy of the whole mapping.
func (t *Table) Entries() map[uint32][]Candidate {
	out := make(map[uint32][]Candidate, len(t.entries))
	for m, list := range t.entries {
		out[m] = slices.Clone(list)
	}
	return out
}

// Len is the number of keys.
func (t *Table) Len() int { return len(t.entries) }

// OutOfRange lists the keys that do not fit the current mode.
func (t *Table) OutOfRange() []uint32 {
	var out []uint32
	for _, m := range t.Masks() {
		if mask.CheckRange(m, t.mode) != nil {
			out = append(out, m)
		}
	}
	return out
}

// AddTexture registers a texture. Registering a texture twice only updates
// its scale.
func (t *Table) AddTexture(tex tile.TextureID, scale float64) {
	t.padScales()
	if i := slices.Index(t.textures, tex); i >= 0 {
		t.scales[i] = scale
		return
	}
	t.textures = append(t.textures, tex)
	t.scales = append(t.scales, scale)
}

// RemoveTexture unregisters tex. Its candidates are dropped by the next
// Validate.
func (t *Table) RemoveTexture(tex tile.TextureID) {
	i := slices.Index(t.textures, tex)
	if i < 0 {
		return
	}
	t.textures = slices.Delete(t.textures, i, i+1)
	if i < len(t.scales) {
		t.scales = slices.Delete(t.scales, i, i+1)
	}
}

// SetTextureScale changes the scale of a registered texture.
func (t *Table) SetTextureScale(tex tile.TextureID, scale float64) error {
	i := slices.Index(t.textures, tex)
	if i < 0 {
		return fmt.Errorf("texture '%s' is not registered", tex)
	}
	t.padScales()
	t.scales[i] = scale
	return nil
}

// Textures returns the registered textures in registration order.
func (t *Table) Textures() []tile.TextureID { return slices.Clone(t.textures) }

// TextureScale returns the scale of tex, or DefaultTextureScale when tex is
// not registered.
func (t *Table) TextureScale(tex tile.TextureID) float64 {
	i := slices.Index(t.textures, tex)
	if i < 0 || i >= len(t.scales) {
		return DefaultTextureScale
	}
	return t.scales[i]
}

func (t *Table) padScales() {
	for len(t.scales) < len(t.textures) {
		t.scales = append(t.scales, DefaultTextureScale)
	}
	t.scales = t.scales[:len(t.textures)]
}

// Validate repairs the table after authoring edits: keys out of range for
// the mode are deleted, candidates whose texture is no longer registered are
// dropped, and the scale list is padded with DefaultTextureScale or truncated
// to match the texture list. It returns the number of keys and candidates
// removed.
func (t *Table) Validate() (keys, candidates int) {
	for m := range t.entries {
		if mask.CheckRange(m, t.mode) != nil {
			delete(t.entries, m)
			keys++
		}
	}
	for m, list := range t.entries {
		kept := slices.DeleteFunc(list, func(c Candidate) bool {
			return c.Texture != "" && !slices.Contains(t.textures, c.Texture)
		})
		candidates += len(list) - len(kept)
		t.entries[m] = kept
	}
	t.padScales()
	return keys, candidates
}

// Clone deep-copies t.
func (t *Table) Clone() *Table {
	return &Table{
		mode:     t.mode,
		entries:  t.Entries(),
		textures: slices.Clone(t.textures),
		scales:   slices.Clone(t.scales),
	}
}
