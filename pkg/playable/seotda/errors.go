package seotda

import "fmt"

// RuleError is a rejected request
// The message is safe to send back to the player who made the request
type RuleError string

func (r RuleError) Error() string {
	return string(r)
}

// rejected actions
const (
	ErrNotYourTurn        = RuleError("it is not your turn")
	ErrInsufficientChips  = RuleError("insufficient chips")
	ErrNotBettingPhase    = RuleError("betting is not open")
	ErrInvalidAmount      = RuleError("invalid amount")
	ErrNotWaitingPhase    = RuleError("the room is not waiting for players")
	ErrNoRoundToContinue  = RuleError("there is no finished round to continue from")
	ErrGameIsOver         = RuleError("game is over")
	ErrPlayerNotFound     = RuleError("player not found")
	ErrPlayerIDRequired   = RuleError("a player id is required")
	ErrAlreadySeated      = RuleError("player is already seated")
	ErrUnknownMessageType = RuleError("unknown message type")
)

// room-level rejections
const (
	ErrRoomFull        = RuleError("room is full")
	ErrRoomNotJoinable = RuleError("room is not joinable while a round is in progress")
)

// CapacityError is returned when the room capacity is out of range
type CapacityError struct {
	Min int
	Max int
	Got int
}

func (c CapacityError) Error() string {
	return fmt.Sprintf("expected a capacity of %d-%d players, got %d", c.Min, c.Max, c.Got)
}
