package variant

import (
	"math/rand/v2"
	"sync"

	"github.com/vk/tilesmith/internal/grid"
)

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
}

// PickSeed mixes a position and a tile identity into a seed. Equal inputs
// always give equal seeds.
func PickSeed(pos grid.Position, id grid.Identity) uint64 {
	h := uint64(uint32(pos.X))*73856093 ^ uint64(uint32(pos.Y))*19349663 ^ uint64(uint32(pos.Z))*83492791
	return mix64(h) ^ mix64(uint64(id)+0x9e3779b97f4a7c15)
}

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Stream is a per-tile random sequence. It is seeded once and keeps
// advancing across calls, so repeated queries yield a sequence rather than a
// fixed value.
type Stream struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewStream seeds a stream from a tile identity.
func NewStream(id grid.Identity) *Stream {
	return &Stream{r: NewRand(mix64(uint64(id)))}
}

// Float32 draws uniformly from [lo, hi). It returns lo when the range is
// empty.
func (s *Stream) Float32(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	f := s.r.Float32()
	s.mu.Unlock()
	return lo + f*(hi-lo)
}
