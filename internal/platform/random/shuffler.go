// Package random provides injectable randomness so pairing outcomes can be
// pinned down in tests.
package random

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Shuffler permutes n elements through swap, matching rand.Shuffle's
// contract.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// LockedShuffler wraps a seeded PCG source behind a mutex; rand/v2 sources
// are not safe for concurrent use.
type LockedShuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a shuffler with a fixed seed for deterministic runs.
func NewSeeded(seed1, seed2 uint64) *LockedShuffler {
	return &LockedShuffler{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// New returns a shuffler seeded from the OS entropy source.
func New() *LockedShuffler {
	var buf [16]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand.Read only fails when the OS source is broken;
		// fall back to the zero seed rather than refusing to start.
		return NewSeeded(0, 0)
	}
	return NewSeeded(
		binary.LittleEndian.Uint64(buf[:8]),
		binary.LittleEndian.Uint64(buf[8:]),
	)
}

func (s *LockedShuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}
