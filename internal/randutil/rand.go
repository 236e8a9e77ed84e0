// Package randutil centralises how this module seeds its random sources, so
// that a single configured seed reproduces a whole training run: the hub's
// shuffles, every worker's deck draws, and the action samplers all derive
// from it deterministically.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64,
// deriving the two 64-bit words rand/v2's PCG wants through a finalizing
// mix so adjacent seeds don't produce correlated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// WorkerSeed derives an independent seed for the nth worker of a run. Plain
// seed+n offsets would hand neighbouring workers overlapping streams once
// mixed the same way; spreading by the golden ratio keeps them apart.
func WorkerSeed(seed int64, worker int) int64 {
	return int64(mix(uint64(seed) + uint64(worker+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
