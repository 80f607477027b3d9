package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	random = rand.New(rand.NewSource(0)) // nolint:gosec
	first := GetRandomName()
	second := GetRandomName()

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	assert.Equal(t, first, GetRandomName())
	assert.Equal(t, second, GetRandomName())

	for i := 0; i < 50; i++ {
		name := GetRandomName()
		idx := strings.Index(name, " ")
		if assert.Greater(t, idx, 0, name) {
			assert.Contains(t, adjectives, name[:idx])
			assert.Contains(t, pictures, name[idx+1:])
		}
	}
}
