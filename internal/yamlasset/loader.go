package yamlasset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/tilesmith/internal/autotile"
	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/vk/tilesmith/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML asset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml and .yml file under paths. Unknown keys are
// rejected. Paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("yamlasset: read %s: %w", file, err)
		}
		part, err := Parse(content)
		if err != nil {
			return nil, fmt.Errorf("yamlasset: %s: %w", file, err)
		}
		model.Merge(part)
		logger.Debug("Loaded YAML file.", "file", file, "tiles", part.TileCount(), "paint", len(part.Paint))
	}
	return model, nil
}

// Parse decodes every document in content into one model.
func Parse(content []byte) (*config.Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	model := &config.Model{}
	for i := 1; ; i++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return model, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode document %d: %w", i, err)
		}
		part, err := translate(&doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		model.Merge(part)
	}
}

func translate(doc *document) (*config.Model, error) {
	m := &config.Model{}
	for _, d := range doc.RuleTiles {
		m.RuleTiles = append(m.RuleTiles, translateRuleTile(d))
	}
	for _, d := range doc.AutoTiles {
		m.AutoTiles = append(m.AutoTiles, translateAutoTile(d))
	}
	for _, d := range doc.StaticTiles {
		m.StaticTiles = append(m.StaticTiles, &config.StaticTile{
			Name:       d.Name,
			ID:         d.ID,
			Sprite:     d.Sprite,
			GameObject: d.GameObject,
			Collider:   d.Collider,
		})
	}
	for _, d := range doc.DerivedTiles {
		t := &config.DerivedTile{Name: d.Name, ID: d.ID, Base: d.Base, Properties: map[string]cty.Value{}}
		for name, node := range d.Properties {
			v, err := nodeValue(&node)
			if err != nil {
				return nil, fmt.Errorf("derived tile '%s' property '%s': %w", d.Name, name, err)
			}
			t.Properties[name] = v
		}
		m.DerivedTiles = append(m.DerivedTiles, t)
	}
	for _, d := range doc.Paint {
		p := &config.Paint{Tile: d.Tile, X: d.X, Y: d.Y, Width: 1, Height: 1, Layer: d.Layer}
		if d.Width != nil {
			p.Width = *d.Width
		}
		if d.Height != nil {
			p.Height = *d.Height
		}
		m.Paint = append(m.Paint, p)
	}
	return m, nil
}

func translateRuleTile(d ruleTileDoc) *config.RuleTile {
	t := &config.RuleTile{
		Name:              d.Name,
		ID:                d.ID,
		Topology:          d.Topology,
		FlatTop:           d.FlatTop,
		DefaultSprite:     d.DefaultSprite,
		DefaultGameObject: d.DefaultGameObject,
		DefaultCollider:   d.DefaultCollider,
	}
	if t.Topology == "" {
		t.Topology = "rectangular"
	}
	for i, rd := range d.Rules {
		id := i + 1
		if rd.ID != nil {
			id = *rd.ID
		}
		r := config.NewRule(id)
		setIf(&r.Enabled, rd.Enabled)
		setIf(&r.Match, rd.Match)
		setIf(&r.Output, rd.Output)
		setIf(&r.Collider, rd.Collider)
		setIf(&r.MinSpeed, rd.MinSpeed)
		setIf(&r.MaxSpeed, rd.MaxSpeed)
		setIf(&r.NoiseScale, rd.NoiseScale)
		r.Sprites = rd.Sprites
		r.GameObject = rd.GameObject
		r.RandomTransform = rd.RandomTransform
		for _, n := range rd.Neighbors {
			r.Neighbors = append(r.Neighbors, config.Neighbor{X: n.X, Y: n.Y, Condition: n.Is})
		}
		t.Rules = append(t.Rules, r)
	}
	return t
}

func translateAutoTile(d autoTileDoc) *config.AutoTile {
	t := &config.AutoTile{
		Name:              d.Name,
		ID:                d.ID,
		Mask:              d.Mask,
		Random:            d.Random,
		PhysicsShapeCheck: d.PhysicsShapeCheck,
		DefaultSprite:     d.DefaultSprite,
		DefaultGameObject: d.DefaultGameObject,
		DefaultCollider:   d.DefaultCollider,
		NoPhysicsShape:    d.NoPhysicsShape,
	}
	for _, td := range d.Textures {
		scale := autotile.DefaultTextureScale
		setIf(&scale, td.Scale)
		t.Textures = append(t.Textures, config.Texture{Name: td.Name, Scale: scale})
	}
	for _, ed := range d.Entries {
		t.Entries = append(t.Entries, config.Entry{Mask: ed.Mask, Sprites: ed.Sprites, Texture: ed.Texture})
	}
	return t
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
