// Package preview prints resolved cells as a text grid, one glyph per sprite
// and one color per tile identity.
package preview

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/tile"
)

const (
	glyphs = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// overflowGlyph stands in for sprites past the end of glyphs.
	overflowGlyph = '?'
	emptyGlyph    = '.'
)

var palette = []lipgloss.Color{
	"#5B8DEF", "#7BC96F", "#FF6B6B", "#F2C94C", "#BB86FC",
	"#56CCF2", "#F2994A", "#6FCF97", "#EB5757", "#9B51E0",
}

// Cell is one resolved cell to show.
type Cell struct {
	Pos      grid.Position
	Identity grid.Identity
	Tile     string
	Sprite   tile.SpriteID
	Animated bool
}

// Options controls rendering.
type Options struct {
	NoColor bool
}

// Renderer styles previews for one output.
type Renderer struct {
	r       *lipgloss.Renderer
	noColor bool
}

// New creates a renderer whose color support is detected from w.
func New(w io.Writer, opts Options) *Renderer {
	return &Renderer{r: lipgloss.NewRenderer(w), noColor: opts.NoColor}
}

func (r *Renderer) style(id grid.Identity, animated bool) lipgloss.Style {
	s := r.r.NewStyle()
	if r.noColor {
		return s
	}
	s = s.Foreground(palette[int(id)%len(palette)])
	if animated {
		s = s.Bold(true).Underline(true)
	}
	return s
}

type legendKey struct {
	sprite tile.SpriteID
	id     grid.Identity
}

// Render draws each layer of cells as a grid with the top row first,
// followed by a legend.
func (r *Renderer) Render(cells []Cell) string {
	if len(cells) == 0 {
		return "(empty grid)\n"
	}

	byLayer := make(map[int][]Cell)
	legend := make(map[legendKey]string)
	for _, c := range cells {
		byLayer[c.Pos.Z] = append(byLayer[c.Pos.Z], c)
		legend[legendKey{c.Sprite, c.Identity}] = c.Tile
	}

	keys := slices.SortedFunc(maps.Keys(legend), func(a, b legendKey) int {
		return cmp.Or(cmp.Compare(a.sprite, b.sprite), cmp.Compare(a.id, b.id))
	})
	glyphOf := make(map[tile.SpriteID]rune)
	for _, k := range keys {
		if _, ok := glyphOf[k.sprite]; !ok {
			glyphOf[k.sprite] = glyphAt(len(glyphOf))
		}
	}

	title := r.r.NewStyle().Bold(!r.noColor)
	var blocks []string
	for _, z := range slices.Sorted(maps.Keys(byLayer)) {
		blocks = append(blocks, title.Render(fmt.Sprintf("layer %d", z)))
		blocks = append(blocks, r.layer(byLayer[z], glyphOf))
	}

	blocks = append(blocks, title.Render("legend"))
	for _, k := range keys {
		name := legend[k]
		if name == "" {
			name = "?"
		}
		sprite := string(k.sprite)
		if sprite == "" {
			sprite = "(no sprite)"
		}
		line := fmt.Sprintf("%c  %-20s %s #%d", glyphOf[k.sprite], sprite, name, k.id)
		blocks = append(blocks, r.style(k.id, false).Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

func (r *Renderer) layer(cells []Cell, glyphOf map[tile.SpriteID]rune) string {
	b := grid.Bounds{XMin: cells[0].Pos.X, YMin: cells[0].Pos.Y, XMax: cells[0].Pos.X, YMax: cells[0].Pos.Y}
	at := make(map[grid.Position]Cell, len(cells))
	for _, c := range cells {
		b = b.Encapsulate(c.Pos)
		at[grid.Pos(c.Pos.X, c.Pos.Y)] = c
	}

	var sb strings.Builder
	for y := b.YMax; y >= b.YMin; y-- {
		for x := b.XMin; x <= b.XMax; x++ {
			if x > b.XMin {
				sb.WriteByte(' ')
			}
			c, ok := at[grid.Pos(x, y)]
			if !ok {
				sb.WriteRune(emptyGlyph)
				continue
			}
			sb.WriteString(r.style(c.Identity, c.Animated).Render(string(glyphOf[c.Sprite])))
		}
		if y > b.YMin {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func glyphAt(i int) rune {
	if i < len(glyphs) {
		return rune(glyphs[i])
	}
	return overflowGlyph
}
