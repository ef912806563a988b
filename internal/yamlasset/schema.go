package yamlasset

import "gopkg.in/yaml.v3"

// document is one YAML asset file.
type document struct {
	RuleTiles    []ruleTileDoc    `yaml:"rule_tiles"`
	AutoTiles    []autoTileDoc    `yaml:"autotiles"`
	StaticTiles  []staticTileDoc  `yaml:"static_tiles"`
	DerivedTiles []derivedTileDoc `yaml:"derived_tiles"`
	Paint        []paintDoc       `yaml:"paint"`
}

type ruleTileDoc struct {
	Name              string    `yaml:"name"`
	ID                uint32    `yaml:"id"`
	Topology          string    `yaml:"topology"`
	FlatTop           bool      `yaml:"flat_top"`
	DefaultSprite     string    `yaml:"default_sprite"`
	DefaultGameObject string    `yaml:"default_game_object"`
	DefaultCollider   string    `yaml:"default_collider"`
	Rules             []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	ID              *int          `yaml:"id"`
	Enabled         *bool         `yaml:"enabled"`
	Match           *string       `yaml:"match"`
	Output          *string       `yaml:"output"`
	Sprites         []string      `yaml:"sprites"`
	GameObject      string        `yaml:"game_object"`
	Collider        *string       `yaml:"collider"`
	MinSpeed        *float64      `yaml:"min_speed"`
	MaxSpeed        *float64      `yaml:"max_speed"`
	NoiseScale      *float64      `yaml:"noise_scale"`
	RandomTransform string        `yaml:"random_transform"`
	Neighbors       []neighborDoc `yaml:"neighbors"`
}

type neighborDoc struct {
	X  int    `yaml:"x"`
	Y  int    `yaml:"y"`
	Is string `yaml:"is"`
}

type autoTileDoc struct {
	Name              string       `yaml:"name"`
	ID                uint32       `yaml:"id"`
	Mask              string       `yaml:"mask"`
	Random            bool         `yaml:"random"`
	PhysicsShapeCheck bool         `yaml:"physics_shape_check"`
	DefaultSprite     string       `yaml:"default_sprite"`
	DefaultGameObject string       `yaml:"default_game_object"`
	DefaultCollider   string       `yaml:"default_collider"`
	NoPhysicsShape    []string     `yaml:"no_physics_shape"`
	Textures          []textureDoc `yaml:"textures"`
	Entries           []entryDoc   `yaml:"entries"`
}

type textureDoc struct {
	Name  string   `yaml:"name"`
	Scale *float64 `yaml:"scale"`
}

type entryDoc struct {
	Mask    uint32   `yaml:"mask"`
	Sprites []string `yaml:"sprites"`
	Texture string   `yaml:"texture"`
}

type staticTileDoc struct {
	Name       string `yaml:"name"`
	ID         uint32 `yaml:"id"`
	Sprite     string `yaml:"sprite"`
	GameObject string `yaml:"game_object"`
	Collider   string `yaml:"collider"`
}

// derivedTileDoc keeps its properties as raw nodes; their types come from
// the base tile's schema.
type derivedTileDoc struct {
	Name       string               `yaml:"name"`
	ID         uint32               `yaml:"id"`
	Base       string               `yaml:"base"`
	Properties map[string]yaml.Node `yaml:"properties"`
}

type paintDoc struct {
	Tile   string `yaml:"tile"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  *int   `yaml:"width"`
	Height *int   `yaml:"height"`
	Layer  int    `yaml:"layer"`
}
