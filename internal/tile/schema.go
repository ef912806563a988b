package tile

import (
	"fmt"
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Property describes one named, typed value a tile variant lets a derived
// tile override.
type Property struct {
	Name string
	Type cty.Type
	Doc  string
}

// Schema is the list of overridable properties of a tile variant.
type Schema []Property

// Lookup finds a property by name.
func (s Schema) Lookup(name string) (Property, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Overridable is implemented by tile variants that can be derived with
// property overrides.
type Overridable interface {
	Name() string
	Schema() Schema
	// Override sets a single property. v has already been converted to the
	// property's declared type.
	Override(name string, v cty.Value) error
}

// ApplyOverrides converts each value to its declared type and hands it to o.
// Properties are applied in name order so failures are reproducible.
func ApplyOverrides(o Overridable, values map[string]cty.Value) error {
	schema := o.Schema()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		prop, ok := schema.Lookup(name)
		if !ok {
			return &UnknownPropertyError{Tile: o.Name(), Property: name}
		}
		v, err := convert.Convert(values[name], prop.Type)
		if err != nil {
			return fmt.Errorf("tile '%s', property '%s': expected %s: %w", o.Name(), name, prop.Type.FriendlyName(), err)
		}
		if err := o.Override(name, v); err != nil {
			return fmt.Errorf("tile '%s', property '%s': %w", o.Name(), name, err)
		}
	}
	return nil
}

// StringValue decodes a converted string property.
func StringValue(v cty.Value) (string, error) {
	var s string
	if v.IsNull() {
		return "", nil
	}
	err := gocty.FromCtyValue(v, &s)
	return s, err
}
