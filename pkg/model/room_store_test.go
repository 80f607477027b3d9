package model

import (
	"encoding/json"
	"os"
	"seotda-server/pkg/db"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// testRoomStore connects to the database named by SEOTDA_TEST_PG_DSN and runs the migrations
func testRoomStore(t *testing.T) *RoomStore {
	t.Helper()

	dsn := os.Getenv("SEOTDA_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("SEOTDA_TEST_PG_DSN is not set")
	}

	conn, err := db.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "../../sql"); err != nil {
		t.Fatal(err)
	}

	return NewRoomStore(conn)
}

func TestRoomStore_Rooms(t *testing.T) {
	a := assert.New(t)
	s := testRoomStore(t)
	roomID := uuid.New().String()

	exists, err := s.RoomExists(cbg, roomID)
	a.NoError(err)
	a.False(exists)

	capacity, err := s.RoomCapacity(cbg, roomID)
	a.NoError(err)
	a.Equal(0, capacity)

	a.Equal(ErrInvalidCapacity, s.CreateRoom(cbg, roomID, "Test Room", 1))
	a.NoError(s.CreateRoom(cbg, roomID, "Test Room", 3))

	exists, err = s.RoomExists(cbg, roomID)
	a.NoError(err)
	a.True(exists)

	capacity, err = s.RoomCapacity(cbg, roomID)
	a.NoError(err)
	a.Equal(3, capacity)

	a.NoError(s.CreateRoom(cbg, roomID, "Test Room", 5))
	capacity, _ = s.RoomCapacity(cbg, roomID)
	a.Equal(5, capacity)
}

func TestRoomStore_PersistRoundResult(t *testing.T) {
	a := assert.New(t)
	s := testRoomStore(t)
	roomID := uuid.New().String()
	a.NoError(s.CreateRoom(cbg, roomID, "History", 4))

	a.NoError(s.PersistRoundResult(cbg, roomID, "a", 200, map[string]interface{}{"round": 1}))
	a.NoError(s.PersistRoundResult(cbg, roomID, "", 300, map[string]interface{}{"round": 2}))

	history, err := s.RecentHistory(cbg, roomID, 10)
	a.NoError(err)
	if a.Len(history, 2) {
		a.Equal(300, history[0].Pot)
		a.Equal("", history[0].WinnerID)
		a.Equal("a", history[1].WinnerID)

		var data map[string]int
		a.NoError(json.Unmarshal(history[1].GameData, &data))
		a.Equal(1, data["round"])
	}

	var rounds int
	a.NoError(s.db.QueryRowContext(cbg, "SELECT rounds_played FROM rooms WHERE id = $1", roomID).Scan(&rounds))
	a.Equal(2, rounds)

	// unknown rooms violate the foreign key and nothing is written
	missing := uuid.New().String()
	a.Error(s.PersistRoundResult(cbg, missing, "a", 100, nil))
	var count int
	err = s.db.QueryRowContext(cbg, "SELECT COUNT(*) FROM game_history WHERE room_id = $1", missing).Scan(&count)
	a.NoError(err)
	a.Equal(0, count)
}
