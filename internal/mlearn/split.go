package mlearn

import (
	"math"
	"math/rand/v2"
)

// Split shuffles n indices with a fixed seed and partitions them into
// train and test sets. Callers index every parallel array (text, label,
// problem id) through the returned indices so the arrays never drift out
// of alignment. The same n, fraction and seed always produce the same
// partitions.
func Split(n int, testFraction float64, seed uint64) (train, test []int) {
	rng := rand.New(rand.NewPCG(seed, seed))
	idx := rng.Perm(n)

	testSize := int(math.Ceil(float64(n) * testFraction))
	if testSize > n {
		testSize = n
	}
	return idx[testSize:], idx[:testSize]
}
