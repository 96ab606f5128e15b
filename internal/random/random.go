// Package random provides the randomness abstraction used for table rolls.
//
// Every roll in the application goes through a Source so that tests can
// substitute a fixed sequence without changing the code doing the rolling.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness provider for table rolls.
//
// Implementations must be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// lockedSource guards a *rand.Rand, which is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// New returns a Source seeded from crypto/rand. Falls back to the wall clock
// if the system entropy pool cannot be read.
func New() Source {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return NewSeeded(seed)
}

// NewSeeded returns a reproducible Source for the given seed.
func NewSeeded(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Roll returns a die result in [1, sides].
func Roll(src Source, sides int) int {
	return src.Intn(sides) + 1
}

// Between returns a uniform value in [lo, hi]. lo must not exceed hi.
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}

// Weighted returns an index chosen by weighted selection.
// weights must be non-empty with all positive values.
func Weighted(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := src.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
