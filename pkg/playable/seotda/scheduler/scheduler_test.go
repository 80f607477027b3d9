package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		eligible []bool
		current  int
		want     int
	}{
		{"next seat", []bool{true, true, true}, 0, 1},
		{"wraps", []bool{true, true, true}, 2, 0},
		{"skips folded", []bool{true, false, true}, 0, 2},
		{"skips folded and wraps", []bool{true, false, false}, 0, 0},
		{"start of table", []bool{false, true}, -1, 1},
		{"current not eligible", []bool{true, false, true}, 1, 2},
		{"out of range current", []bool{false, true}, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.eligible, tt.current)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_NoEligiblePlayers(t *testing.T) {
	idx, err := Next([]bool{false, false, false}, 1)
	assert.Equal(t, -1, idx)
	assert.Equal(t, ErrNoEligiblePlayers, err)

	_, err = Next(nil, 0)
	assert.Equal(t, ErrNoEligiblePlayers, err)

	_, err = First(nil, 0)
	assert.Equal(t, ErrNoEligiblePlayers, err)
}

func TestNext_CycleLength(t *testing.T) {
	eligible := []bool{true, false, true, true, false}

	seen := make(map[int]int)
	idx := 0
	for i := 0; i < 9; i++ {
		next, err := Next(eligible, idx)
		assert.NoError(t, err)
		assert.NotEqual(t, idx, next)
		seen[next]++
		idx = next
	}

	assert.Equal(t, map[int]int{0: 3, 2: 3, 3: 3}, seen)
}

func TestFirst(t *testing.T) {
	a := assert.New(t)

	idx, err := First([]bool{true, true, true}, 1)
	a.NoError(err)
	a.Equal(1, idx)

	idx, err = First([]bool{true, false, true}, 1)
	a.NoError(err)
	a.Equal(2, idx)

	idx, err = First([]bool{true, false, false}, 4)
	a.NoError(err)
	a.Equal(0, idx)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 2, Count([]bool{true, false, true}))
}
