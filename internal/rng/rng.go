package rng

import "math"

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seed returns a positive shuffle seed drawn from the generator
// A nil generator falls back to Crypto
func Seed(g Generator) int64 {
	if g == nil {
		g = Crypto{}
	}

	return int64(g.Intn(math.MaxInt32)) + 1
}
