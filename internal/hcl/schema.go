package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	RuleTiles    []*ruleTileBlock    `hcl:"rule_tile,block"`
	AutoTiles    []*autoTileBlock    `hcl:"autotile,block"`
	StaticTiles  []*staticTileBlock  `hcl:"static_tile,block"`
	DerivedTiles []*derivedTileBlock `hcl:"derived_tile,block"`
	Paint        []*paintBlock       `hcl:"paint,block"`
	Remain       hcl.Body            `hcl:",remain"`
}

type ruleTileBlock struct {
	Name              string       `hcl:"name,label"`
	ID                uint32       `hcl:"id"`
	Topology          string       `hcl:"topology,optional"`
	FlatTop           bool         `hcl:"flat_top,optional"`
	DefaultSprite     string       `hcl:"default_sprite,optional"`
	DefaultGameObject string       `hcl:"default_game_object,optional"`
	DefaultCollider   string       `hcl:"default_collider,optional"`
	Rules             []*ruleBlock `hcl:"rule,block"`
}

type ruleBlock struct {
	ID              *int             `hcl:"id,optional"`
	Enabled         *bool            `hcl:"enabled,optional"`
	Match           *string          `hcl:"match,optional"`
	Output          *string          `hcl:"output,optional"`
	Sprites         []string         `hcl:"sprites,optional"`
	GameObject      string           `hcl:"game_object,optional"`
	Collider        *string          `hcl:"collider,optional"`
	MinSpeed        *float64         `hcl:"min_speed,optional"`
	MaxSpeed        *float64         `hcl:"max_speed,optional"`
	NoiseScale      *float64         `hcl:"noise_scale,optional"`
	RandomTransform string           `hcl:"random_transform,optional"`
	Neighbors       []*neighborBlock `hcl:"neighbor,block"`
}

type neighborBlock struct {
	X  int    `hcl:"x"`
	Y  int    `hcl:"y"`
	Is string `hcl:"is"`
}

type autoTileBlock struct {
	Name              string          `hcl:"name,label"`
	ID                uint32          `hcl:"id"`
	Mask              string          `hcl:"mask"`
	Random            bool            `hcl:"random,optional"`
	PhysicsShapeCheck bool            `hcl:"physics_shape_check,optional"`
	DefaultSprite     string          `hcl:"default_sprite,optional"`
	DefaultGameObject string          `hcl:"default_game_object,optional"`
	DefaultCollider   string          `hcl:"default_collider,optional"`
	NoPhysicsShape    []string        `hcl:"no_physics_shape,optional"`
	Textures          []*textureBlock `hcl:"texture,block"`
	Entries           []*entryBlock   `hcl:"entry,block"`
}

type textureBlock struct {
	Name  string   `hcl:"name,label"`
	Scale *float64 `hcl:"scale,optional"`
}

type entryBlock struct {
	Mask    uint32   `hcl:"mask"`
	Sprites []string `hcl:"sprites"`
	Texture string   `hcl:"texture,optional"`
}

type staticTileBlock struct {
	Name       string `hcl:"name,label"`
	ID         uint32 `hcl:"id"`
	Sprite     string `hcl:"sprite,optional"`
	GameObject string `hcl:"game_object,optional"`
	Collider   string `hcl:"collider,optional"`
}

type derivedTileBlock struct {
	Name       string           `hcl:"name,label"`
	ID         uint32           `hcl:"id"`
	Base       string           `hcl:"base"`
	Properties *propertiesBlock `hcl:"properties,block"`
}

// propertiesBlock keeps the override attributes raw; their types come from
// the base tile's schema.
type propertiesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type paintBlock struct {
	Tile   string `hcl:"tile,label"`
	X      int    `hcl:"x,optional"`
	Y      int    `hcl:"y,optional"`
	Width  *int   `hcl:"width,optional"`
	Height *int   `hcl:"height,optional"`
	Layer  int    `hcl:"layer,optional"`
}
