package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Random is a seeded source for the simulation picker
// Seed 0 derives the seed from the clock
type Random struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewRandom creates a picker with a fixed seed for reproducible runs
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the effective seed
func (r *Random) Seed() int64 {
	return r.seed
}

// Intn returns a uniform index in [0, n)
func (r *Random) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
