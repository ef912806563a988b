package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/tilesmith/internal/autotile"
	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/vk/tilesmith/internal/mask"
)

type validator interface {
	Validate() []error
}

// ValidateRegistry checks every registered tile before the first batch.
// Masks outside an autotile's mode are errors, since those entries can never
// be looked up. Rules with mismatched offset and condition lists, and
// autotiles with an empty table, still evaluate and are only logged as
// warnings.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, id := range r.Identities() {
		h := r.handlers[id]

		if at, ok := h.(*autotile.Tile); ok && at.Table.Len() == 0 {
			logger.Warn("Autotile has no candidates and will always show its default sprite.", "tile", at.Name(), "identity", id)
		}

		v, ok := h.(validator)
		if !ok {
			continue
		}
		for _, err := range v.Validate() {
			var rangeErr *mask.MaskRangeError
			if errors.As(err, &rangeErr) {
				errs = append(errs, fmt.Sprintf("identity %d: %v", id, err))
				continue
			}
			logger.Warn("Tile has an authoring problem.", "identity", id, "kind", h.Kind(), "error", err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
