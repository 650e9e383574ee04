package core

import "golang.org/x/exp/rand"

// NewRandom creates a deterministic PCG-backed generator for the given seed.
// Each render row gets its own generator so results do not depend on scheduling.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
