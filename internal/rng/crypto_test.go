package rng

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(5)] = true
	}

	a.True(found[0])
	a.True(found[1])
	a.True(found[2])
	a.True(found[3])
	a.True(found[4])
	a.False(found[5])
}

func TestSeed(t *testing.T) {
	a := assert.New(t)

	a.Greater(Seed(nil), int64(0))
	a.Greater(Seed(Crypto{}), int64(0))

	r1 := rand.New(rand.NewSource(4)) // nolint:gosec
	r2 := rand.New(rand.NewSource(4)) // nolint:gosec
	for i := 0; i < 5; i++ {
		s := Seed(r1)
		a.Greater(s, int64(0))
		a.Equal(s, Seed(r2))
	}
}
