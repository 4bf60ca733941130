// target.go implements target placement for the simulation.

package game

import (
	"math/rand"
)

// randomOpenCell picks a cell uniformly among the open cells.
// If rng is nil, we use deterministic pseudo-random logic so that speculative
// futures explored by planners are reproducible.
func (s *State) randomOpenCell(rng *rand.Rand) (Cell, bool) {
	// Cheap first try: a single uniform draw that lands on an open cell is
	// already uniform over open cells.
	if rng != nil {
		c := Cell{X: rng.Intn(s.width), Y: rng.Intn(s.height)}
		if s.Occupant(c) == Empty {
			return c, true
		}
	}

	n := s.OpenCount()
	if n == 0 {
		return Cell{}, false
	}

	var idx int
	if rng != nil {
		idx = rng.Intn(n)
	} else {
		// Deterministic fallback: hash of moves+score
		idx = int(deterministicU64Fast(uint64(s.moves), uint64(s.score)) % uint64(n))
	}

	i := 0
	for c := range s.OpenCells() {
		if i == idx {
			return c, true
		}
		i++
	}
	return Cell{}, false
}

// deterministicU64Fast is a simple deterministic hasher for reproducibility.
func deterministicU64Fast(a, b uint64) uint64 {
	// Variant of splitmix64
	x := a + b*0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
