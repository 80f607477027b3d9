package playable

import (
	"fmt"
	"seotda-server/pkg/hwatu"
	"time"

	"github.com/google/uuid"
)

// inbound message types
const (
	TypeJoinRoom  = "join_room"
	TypeLeaveRoom = "leave_room"
	TypeReady     = "ready"
	TypeBet       = "bet"
	TypeNewGame   = "new_game"
)

// outbound message types
const (
	TypeGameState  = "game_state"
	TypeGameResult = "game_result"
	TypeError      = "error"
	TypeLog        = "log"
	TypeStatus     = "status"
)

// LogMessage is the format a game should send log messages in
// If PlayerIDs is empty, assume it's a general statement, otherwise the message will be sent like "{player} did X, Y, Z"
type LogMessage struct {
	UUID      string       `json:"uuid"`
	PlayerIDs []string     `json:"playerIds"`
	Cards     []hwatu.Card `json:"cards"`
	Message   string       `json:"message"`
	Time      time.Time    `json:"time"`
}

// Response is a message sent to a client
type Response struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Type:    TypeStatus,
		Message: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse returns an error response for the client
func ErrorResponse(ctx string, err error) *Response {
	return &Response{
		Type:    TypeError,
		Message: err.Error(),
		Context: ctx,
	}
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Type        string `json:"type"`
	RoomID      string `json:"room_id"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Action      string `json:"action"`
	Amount      int    `json:"amount"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID string, format string, a ...interface{}) *LogMessage {
	var playerIDs []string
	if playerID != "" {
		playerIDs = []string{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
