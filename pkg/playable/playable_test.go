package playable

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage("", "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.PlayerIDs)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, time.Now().Before(lm.Time))
	assert.Nil(t, lm.Cards)
	assert.Len(t, lm.UUID, 36)
}

func TestSimpleLogMessage_withPlayerID(t *testing.T) {
	lm := SimpleLogMessage("alice", "test %d", 4)
	assert.Equal(t, "test 4", lm.Message)
	assert.Equal(t, []string{"alice"}, lm.PlayerIDs)
}

func TestOK(t *testing.T) {
	assert.Equal(t, &Response{Type: "status", Message: "OK"}, OK())
	assert.Equal(t, &Response{Type: "status", Message: "OK", Context: "abc"}, OK("abc"))
}

func TestErrorResponse(t *testing.T) {
	res := ErrorResponse("ctx", errors.New("not your turn"))
	b, err := json.Marshal(res)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","message":"not your turn","context":"ctx"}`, string(b))
}

func TestPayloadIn(t *testing.T) {
	var p PayloadIn
	err := json.Unmarshal([]byte(`{"type":"bet","room_id":"r1","player_id":"p1","action":"raise","amount":50,"context":"x"}`), &p)
	assert.NoError(t, err)
	assert.Equal(t, PayloadIn{
		Type:     TypeBet,
		RoomID:   "r1",
		PlayerID: "p1",
		Action:   "raise",
		Amount:   50,
		Context:  "x",
	}, p)
}
