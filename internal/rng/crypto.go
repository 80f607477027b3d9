package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws numbers from crypto/rand
// It is the default seeder for production shuffles
type Crypto struct{}

// Intn returns a random number in [0, n)
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: n must be > 0")
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
