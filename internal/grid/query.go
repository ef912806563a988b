package grid

// Query is the minimal read interface the engine needs from the host grid.
type Query interface {
	TileAt(p Position) Identity
}

// BlockQuery is implemented by hosts that can read a rectangular block in one
// call. The result is written row-major, bottom row first, into out (grown
// if needed) and returned.
type BlockQuery interface {
	Query
	TilesInBlock(origin Position, b Bounds, out []Identity) []Identity
}

// Refresher receives positions whose visuals must be recomputed.
type Refresher interface {
	RequestRefresh(ps ...Position)
}

// Block reads the block b around origin from q, using TilesInBlock when q
// supports it.
func Block(q Query, origin Position, b Bounds, out []Identity) []Identity {
	if bq, ok := q.(BlockQuery); ok {
		return bq.TilesInBlock(origin, b, out)
	}
	out = grow(out, b.Len())
	b.Each(func(i int, off Position) {
		out[i] = q.TileAt(origin.Add(off))
	})
	return out
}

func grow(out []Identity, n int) []Identity {
	if cap(out) < n {
		return make([]Identity, n)
	}
	return out[:n]
}
