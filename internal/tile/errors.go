package tile

import "fmt"

// ConfigurationMismatchError is returned when an authoring template or table
// is applied to a tile configured for a different mode. Nothing is applied.
type ConfigurationMismatchError struct {
	Subject string
	Want    string
	Got     string
}

func (e *ConfigurationMismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: tile is configured for %s, template is %s", e.Subject, e.Want, e.Got)
}

// UnknownPropertyError is returned when an override names a property the
// tile's schema does not declare.
type UnknownPropertyError struct {
	Tile     string
	Property string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("tile '%s' has no overridable property '%s'", e.Tile, e.Property)
}
