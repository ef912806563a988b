package hcl

import (
	"context"
	"io"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Writer is the HCL-specific implementation of the config.Writer interface.
// Its output is read back by Loader into an equal model.
type Writer struct{}

// NewWriter creates a new HCL asset writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write emits m as a single HCL file.
func (w *Writer) Write(ctx context.Context, m *config.Model, out io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, t := range m.RuleTiles {
		writeRuleTile(body, t)
	}
	for _, t := range m.AutoTiles {
		writeAutoTile(body, t)
	}
	for _, t := range m.StaticTiles {
		b := appendBlock(body, "static_tile", t.Name)
		b.SetAttributeValue("id", cty.NumberUIntVal(uint64(t.ID)))
		setString(b, "sprite", t.Sprite)
		setString(b, "game_object", t.GameObject)
		setString(b, "collider", t.Collider)
	}
	for _, t := range m.DerivedTiles {
		b := appendBlock(body, "derived_tile", t.Name)
		b.SetAttributeValue("id", cty.NumberUIntVal(uint64(t.ID)))
		b.SetAttributeValue("base", cty.StringVal(t.Base))
		if len(t.Properties) > 0 {
			props := b.AppendNewBlock("properties", nil).Body()
			for _, name := range slices.Sorted(maps.Keys(t.Properties)) {
				props.SetAttributeValue(name, t.Properties[name])
			}
		}
	}
	for _, p := range m.Paint {
		b := appendBlock(body, "paint", p.Tile)
		b.SetAttributeValue("x", cty.NumberIntVal(int64(p.X)))
		b.SetAttributeValue("y", cty.NumberIntVal(int64(p.Y)))
		b.SetAttributeValue("width", cty.NumberIntVal(int64(p.Width)))
		b.SetAttributeValue("height", cty.NumberIntVal(int64(p.Height)))
		if p.Layer != 0 {
			b.SetAttributeValue("layer", cty.NumberIntVal(int64(p.Layer)))
		}
	}

	n, err := f.WriteTo(out)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("HCL assets written.", "bytes", n, "tiles", m.TileCount())
	return nil
}

func appendBlock(body *hclwrite.Body, kind, label string) *hclwrite.Body {
	if len(body.Blocks()) > 0 {
		body.AppendNewline()
	}
	return body.AppendNewBlock(kind, []string{label}).Body()
}

func setString(b *hclwrite.Body, name, v string) {
	if v != "" {
		b.SetAttributeValue(name, cty.StringVal(v))
	}
}

func setStrings(b *hclwrite.Body, name string, vs []string) {
	if len(vs) == 0 {
		return
	}
	vals := make([]cty.Value, len(vs))
	for i, v := range vs {
		vals[i] = cty.StringVal(v)
	}
	b.SetAttributeValue(name, cty.ListVal(vals))
}

func writeRuleTile(body *hclwrite.Body, t *config.RuleTile) {
	b := appendBlock(body, "rule_tile", t.Name)
	b.SetAttributeValue("id", cty.NumberUIntVal(uint64(t.ID)))
	setString(b, "topology", t.Topology)
	if t.FlatTop {
		b.SetAttributeValue("flat_top", cty.True)
	}
	setString(b, "default_sprite", t.DefaultSprite)
	setString(b, "default_game_object", t.DefaultGameObject)
	setString(b, "default_collider", t.DefaultCollider)

	for _, r := range t.Rules {
		b.AppendNewline()
		rb := b.AppendNewBlock("rule", nil).Body()
		rb.SetAttributeValue("id", cty.NumberIntVal(int64(r.ID)))
		if !r.Enabled {
			rb.SetAttributeValue("enabled", cty.False)
		}
		rb.SetAttributeValue("match", cty.StringVal(r.Match))
		rb.SetAttributeValue("output", cty.StringVal(r.Output))
		setStrings(rb, "sprites", r.Sprites)
		setString(rb, "game_object", r.GameObject)
		rb.SetAttributeValue("collider", cty.StringVal(r.Collider))
		rb.SetAttributeValue("min_speed", cty.NumberFloatVal(r.MinSpeed))
		rb.SetAttributeValue("max_speed", cty.NumberFloatVal(r.MaxSpeed))
		rb.SetAttributeValue("noise_scale", cty.NumberFloatVal(r.NoiseScale))
		setString(rb, "random_transform", r.RandomTransform)
		for _, n := range r.Neighbors {
			nb := rb.AppendNewBlock("neighbor", nil).Body()
			nb.SetAttributeValue("x", cty.NumberIntVal(int64(n.X)))
			nb.SetAttributeValue("y", cty.NumberIntVal(int64(n.Y)))
			nb.SetAttributeValue("is", cty.StringVal(n.Condition))
		}
	}
}

func writeAutoTile(body *hclwrite.Body, t *config.AutoTile) {
	b := appendBlock(body, "autotile", t.Name)
	b.SetAttributeValue("id", cty.NumberUIntVal(uint64(t.ID)))
	b.SetAttributeValue("mask", cty.StringVal(t.Mask))
	if t.Random {
		b.SetAttributeValue("random", cty.True)
	}
	if t.PhysicsShapeCheck {
		b.SetAttributeValue("physics_shape_check", cty.True)
	}
	setString(b, "default_sprite", t.DefaultSprite)
	setString(b, "default_game_object", t.DefaultGameObject)
	setString(b, "default_collider", t.DefaultCollider)
	setStrings(b, "no_physics_shape", t.NoPhysicsShape)

	for _, tex := range t.Textures {
		tb := b.AppendNewBlock("texture", []string{tex.Name}).Body()
		tb.SetAttributeValue("scale", cty.NumberFloatVal(tex.Scale))
	}
	for _, e := range t.Entries {
		eb := b.AppendNewBlock("entry", nil).Body()
		eb.SetAttributeValue("mask", cty.NumberUIntVal(uint64(e.Mask)))
		setStrings(eb, "sprites", e.Sprites)
		if len(e.Sprites) == 0 {
			eb.SetAttributeValue("sprites", cty.ListValEmpty(cty.String))
		}
		setString(eb, "texture", e.Texture)
	}
}
