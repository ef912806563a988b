// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/vk/tilesmith/internal/grid"
)

// ParseGrid paints a map from ASCII art. The last row is y=0 and the first
// column is x=0, so the picture reads the way the grid is drawn. '.' and ' '
// are empty; every other rune must be in legend.
func ParseGrid(art string, legend map[rune]grid.Identity) (*grid.Map, error) {
	m := grid.NewMap()
	rows := strings.Split(strings.Trim(art, "\n"), "\n")
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, r := range []rune(row) {
			if r == '.' || r == ' ' {
				continue
			}
			id, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("row %d: rune %q has no identity", i, r)
			}
			m.Set(grid.Pos(x, y), id)
		}
	}
	return m, nil
}

// MustParseGrid is ParseGrid that panics on error.
func MustParseGrid(art string, legend map[rune]grid.Identity) *grid.Map {
	m, err := ParseGrid(art, legend)
	if err != nil {
		panic(err)
	}
	return m
}
