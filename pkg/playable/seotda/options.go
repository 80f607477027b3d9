package seotda

import (
	"errors"
	"seotda-server/internal/rng"
	"seotda-server/pkg/hwatu"
	"time"
)

// MaxCapacity is the most players a twenty card deck can deal to
const MaxCapacity = hwatu.Size / 2

// Options are options for creating a new seotda session
type Options struct {
	Capacity      int // Default: 4
	MinPlayers    int // Default: 2, the quorum needed to deal
	StartingChips int // Default: 1000
	BaseBet       int // Default: 100, the bet level at the start of each round
	// StartDelay postpones each deal, zero deals immediately
	StartDelay time.Duration
	// Seeder provides shuffle seeds, defaults to rng.Crypto
	Seeder rng.Generator
}

// DefaultOptions returns the default options for a seotda session
func DefaultOptions() Options {
	return Options{
		Capacity:      4,
		MinPlayers:    2,
		StartingChips: 1000,
		BaseBet:       100,
	}
}

func (o Options) validate() error {
	if o.Capacity < 2 || o.Capacity > MaxCapacity {
		return CapacityError{
			Min: 2,
			Max: MaxCapacity,
			Got: o.Capacity,
		}
	}

	if o.MinPlayers < 2 || o.MinPlayers > o.Capacity {
		return errors.New("minimum players must be between 2 and the room capacity")
	}

	if o.StartingChips <= 0 {
		return errors.New("starting chips must be greater than zero")
	}

	if o.BaseBet <= 0 || o.BaseBet > o.StartingChips {
		return errors.New("base bet must be between 1 and the starting chips")
	}

	return nil
}
