package registry

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/tile"
)

// Module is the interface that all tile modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry maps tile identities to their handlers. It is written during
// startup and read-only afterwards.
type Registry struct {
	handlers map[grid.Identity]tile.Handler
	cells    map[grid.Identity]tile.CellResolver
	names    map[string]grid.Identity
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		handlers: make(map[grid.Identity]tile.Handler),
		cells:    make(map[grid.Identity]tile.CellResolver),
		names:    make(map[string]grid.Identity),
	}
}

// Register adds the batch handler for h.Identity(). Registering the None
// identity or an identity twice is a programming error and panics.
func (r *Registry) Register(h tile.Handler) {
	id := h.Identity()
	if id == grid.None {
		panic("tile handler registered with the None identity")
	}
	if _, exists := r.handlers[id]; exists {
		panic(fmt.Sprintf("tile handler for identity %d already registered", id))
	}
	r.handlers[id] = h
	if n, ok := h.(interface{ Name() string }); ok && n.Name() != "" {
		if prev, dup := r.names[n.Name()]; dup {
			panic(fmt.Sprintf("tile name '%s' used by identities %d and %d", n.Name(), prev, id))
		}
		r.names[n.Name()] = id
	}
	if c, ok := h.(tile.CellResolver); ok {
		if _, exists := r.cells[id]; !exists {
			r.cells[id] = c
		}
	}
}

// RegisterCell adds a single-cell resolver for id. It is used for identities
// that have no batch handler, and panics on duplicates.
func (r *Registry) RegisterCell(id grid.Identity, c tile.CellResolver) {
	if _, exists := r.cells[id]; exists {
		panic(fmt.Sprintf("cell resolver for identity %d already registered", id))
	}
	r.cells[id] = c
}

// Lookup returns the batch handler for id.
func (r *Registry) Lookup(id grid.Identity) (tile.Handler, bool) {
	h, ok := r.handlers[id]
	return h, ok
}

// LookupCell returns the single-cell resolver for id.
func (r *Registry) LookupCell(id grid.Identity) (tile.CellResolver, bool) {
	c, ok := r.cells[id]
	return c, ok
}

// ByName returns the identity registered under a tile name.
func (r *Registry) ByName(name string) (grid.Identity, bool) {
	id, ok := r.names[name]
	return id, ok
}

// Identities lists every identity with a batch handler in ascending order.
func (r *Registry) Identities() []grid.Identity {
	return slices.Sorted(maps.Keys(r.handlers))
}

// Len is the number of batch handlers.
func (r *Registry) Len() int { return len(r.handlers) }
