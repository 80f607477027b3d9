package scheduler

import "errors"

// ErrNoEligiblePlayers is returned when nobody can take a turn
// The session should have ended the round before asking
var ErrNoEligiblePlayers = errors.New("no eligible players")

// Next returns the index of the next eligible seat after current
// The search wraps around the table, so current is only returned if it is the only eligible seat.
// A current of -1 starts the search at seat 0.
func Next(eligible []bool, current int) (int, error) {
	n := len(eligible)
	if n == 0 {
		return -1, ErrNoEligiblePlayers
	}

	if current < -1 || current >= n {
		current = -1
	}

	for i := 1; i <= n; i++ {
		idx := (current + i) % n
		if eligible[idx] {
			return idx, nil
		}
	}

	return -1, ErrNoEligiblePlayers
}

// First returns the first eligible seat starting at (and including) start
func First(eligible []bool, start int) (int, error) {
	n := len(eligible)
	if n == 0 {
		return -1, ErrNoEligiblePlayers
	}

	return Next(eligible, ((start%n)+n-1)%n)
}

// Count returns the number of eligible seats
func Count(eligible []bool) int {
	count := 0
	for _, ok := range eligible {
		if ok {
			count++
		}
	}

	return count
}
