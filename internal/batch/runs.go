package batch

import "github.com/vk/tilesmith/internal/grid"

// ScanRuns calls fn for every maximal run of equal, non-None identities in
// ids[start:end]. A None cell ends the current run; the next non-None cell
// starts a new one even if it has the same identity as the run before the
// gap. None cells are never reported.
func ScanRuns(ids []grid.Identity, start, end int, fn func(start, end int, id grid.Identity)) {
	runStart := -1
	var runID grid.Identity
	for i := start; i < end; i++ {
		id := ids[i]
		if runStart >= 0 && id == runID {
			continue
		}
		if runStart >= 0 {
			fn(runStart, i, runID)
			runStart = -1
		}
		if id != grid.None {
			runStart, runID = i, id
		}
	}
	if runStart >= 0 {
		fn(runStart, end, runID)
	}
}
