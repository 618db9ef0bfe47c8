// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"math/rand"

	"github.com/aryoshi/vnfetch/pkg/types"
)

// Selector picks items uniformly at random from candidate pools. Seeded
// construction keeps the random operations reproducible in tests.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a Selector seeded with seed.
func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Pick selects one element of pool with uniform probability. ok is false
// when the pool is empty; callers interpret that as "relax your criteria".
func (s *Selector) Pick(pool []types.FormattedVN) (vn types.FormattedVN, ok bool) {
	if len(pool) == 0 {
		return types.FormattedVN{}, false
	}
	return pool[s.rng.Intn(len(pool))], true
}

// IntN returns a uniform value in [0, n).
func (s *Selector) IntN(n int) int {
	return s.rng.Intn(n)
}
