package room

import (
	"context"
	"errors"
	"seotda-server/pkg/playable/seotda"
	"time"
)

// ErrRoomNotFound is returned when the directory does not know the room
var ErrRoomNotFound = errors.New("room not found")

// ErrNotInRoom is returned when a client sends a game message before joining
var ErrNotInRoom = errors.New("join a room first")

// ErrAlreadyInRoom is returned when a client joins while it is still in a room
var ErrAlreadyInRoom = errors.New("leave the current room first")

// ErrPlayerMismatch is returned when the joining player does not match the access token
var ErrPlayerMismatch = errors.New("player id does not match the access token")

var errShiftEnded = errors.New("dealer shift has ended")

// RoomDirectory knows which rooms exist and how many players they seat
type RoomDirectory interface {
	RoomExists(ctx context.Context, roomID string) (bool, error)
	RoomCapacity(ctx context.Context, roomID string) (int, error)
}

// directoryInvalidator is implemented by directories that cache room metadata
type directoryInvalidator interface {
	Invalidate(roomID string)
}

// ResultRecorder stores finished rounds
type ResultRecorder interface {
	PersistRoundResult(ctx context.Context, roomID, winnerID string, pot int, snapshot interface{}) error
}

// Options are the settings every new room is created with
type Options struct {
	// Game is the session template, Capacity is replaced by the directory's capacity
	// The Seeder is shared by every room and must be safe for concurrent use
	Game seotda.Options
	// PersistTimeout bounds each PersistRoundResult call
	PersistTimeout time.Duration
}

// DefaultOptions returns the default room options
func DefaultOptions() Options {
	return Options{
		Game:           seotda.DefaultOptions(),
		PersistTimeout: 5 * time.Second,
	}
}
