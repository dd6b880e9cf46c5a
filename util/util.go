package util

import "math/rand"

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateTreeShape generates a random tree shape of num nodes as a parent
// assignment: shape[0] is -1 (the root) and shape[i] for i > 0 is the index
// of node i's parent, always below i. maxFanout bounds how many children a
// node collects; pass 0 for unbounded.
func (r *RNG) GenerateTreeShape(num int, maxFanout int) []int {
	shape := make([]int, num)
	if num == 0 {
		return shape
	}

	fanout := make([]int, num)
	shape[0] = -1

	for i := 1; i < num; i++ {
		for {
			p := r.rand.Intn(i)
			if maxFanout > 0 && fanout[p] >= maxFanout {
				continue
			}
			shape[i] = p
			fanout[p]++
			break
		}
	}

	return shape
}

// Shuffle returns a shuffled copy of indexes 0..num-1, for randomized
// visitation order in tests.
func (r *RNG) Shuffle(num int) []int {
	out := r.rand.Perm(num)
	return out
}
