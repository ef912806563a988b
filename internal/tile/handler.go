package tile

import (
	"fmt"

	"github.com/vk/tilesmith/internal/grid"
)

// Kind tags the concrete tile variant behind a Handler.
type Kind int

const (
	KindStatic Kind = iota
	KindRule
	KindAuto
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindRule:
		return "rule"
	case KindAuto:
		return "auto"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Handler resolves whole runs of cells that share one identity. The batch
// driver calls it once per run, possibly from several goroutines at once for
// different runs, so implementations must not mutate shared state while
// resolving.
type Handler interface {
	Identity() grid.Identity
	Kind() Kind

	// RefreshRun emits every position whose visual depends on a cell in
	// positions. Duplicates are allowed.
	RefreshRun(positions []grid.Position, emit func(grid.Position))

	// ResolveRun writes the visual for positions[i] into out[i].
	ResolveRun(q grid.Query, positions []grid.Position, out []Data)
}

// Animator is implemented by handlers that can produce animations. ok[i]
// reports whether out[i] was set.
type Animator interface {
	AnimateRun(q grid.Query, positions []grid.Position, out []AnimationData, ok []bool)
}

// CellResolver is the non-batched path: one cell per call.
type CellResolver interface {
	Refresh(p grid.Position, emit func(grid.Position))
	Resolve(q grid.Query, p grid.Position) Data
}
