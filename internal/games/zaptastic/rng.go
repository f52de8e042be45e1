package zaptastic

import "math/rand"

// RandomSource is the randomness the simulation draws from.
// *rand.Rand satisfies it; tests inject scripted sources.
type RandomSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandomSource returns a seeded deterministic source.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness
}
