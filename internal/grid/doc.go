// Package grid holds the coordinate and identity types shared by every part
// of the engine, together with the interfaces through which the engine reads
// the host's tile grid.
//
// The engine never owns cell storage. It asks the host for the identity at a
// position (Query), optionally for a whole block at once (BlockQuery), and
// hands back positions that need re-evaluation (Refresher). Map is a small
// in-memory host used by the CLI and by tests.
package grid
