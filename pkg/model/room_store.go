package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"seotda-server/pkg/db"

	"github.com/sirupsen/logrus"
)

// RoomStore reads rooms from and writes round history to postgres
type RoomStore struct {
	db *sql.DB
}

// NewRoomStore returns a store backed by conn
// A nil conn uses the shared db.Instance()
func NewRoomStore(conn *sql.DB) *RoomStore {
	if conn == nil {
		conn = db.Instance()
	}

	return &RoomStore{db: conn}
}

// CreateRoom registers a room, updating the capacity of an existing one
func (r *RoomStore) CreateRoom(ctx context.Context, roomID, name string, maxPlayers int) error {
	if maxPlayers < 2 {
		return ErrInvalidCapacity
	}

	const query = `
INSERT INTO rooms (id, name, max_players)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, max_players = EXCLUDED.max_players, updated = (NOW() AT TIME ZONE 'UTC')`

	_, err := r.db.ExecContext(ctx, query, roomID, name, maxPlayers)
	return err
}

// RoomExists returns true if the room is in the rooms table
func (r *RoomStore) RoomExists(ctx context.Context, roomID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, roomID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// RoomCapacity returns the room's max_players
func (r *RoomStore) RoomCapacity(ctx context.Context, roomID string) (int, error) {
	const query = `SELECT max_players FROM rooms WHERE id = $1`

	var capacity int
	if err := r.db.QueryRowContext(ctx, query, roomID).Scan(&capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}

		return 0, err
	}

	return capacity, nil
}

// PersistRoundResult writes the round to game_history and bumps the room's round count
func (r *RoomStore) PersistRoundResult(ctx context.Context, roomID, winnerID string, pot int, snapshot interface{}) (err error) {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if !commit {
			rollback(tx)
			return
		}

		if cerr := tx.Commit(); cerr != nil {
			logrus.WithError(cerr).Error("could not commit transaction")
			err = cerr
		}
	}()

	winner := sql.NullString{String: winnerID, Valid: winnerID != ""}

	const insert = `
INSERT INTO game_history (room_id, winner_id, pot_amount, game_data)
VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insert, roomID, winner, pot, b); err != nil {
		return err
	}

	const update = `
UPDATE rooms
SET rounds_played = rounds_played + 1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, roomID); err != nil {
		return err
	}

	commit = true
	return nil
}

// History is a row in the game_history table
type History struct {
	ID       int64           `json:"id"`
	RoomID   string          `json:"roomId"`
	WinnerID string          `json:"winnerId"`
	Pot      int             `json:"pot"`
	GameData json.RawMessage `json:"gameData"`
}

func getHistoryByRow(row db.Scanner) (*History, error) {
	var h History
	var winner sql.NullString
	var data []byte
	if err := row.Scan(&h.ID, &h.RoomID, &winner, &h.Pot, &data); err != nil {
		return nil, err
	}

	h.WinnerID = winner.String
	h.GameData = data
	return &h, nil
}

// RecentHistory returns the room's most recent rounds, newest first
func (r *RoomStore) RecentHistory(ctx context.Context, roomID string, limit int) ([]*History, error) {
	if limit <= 0 {
		limit = 25
	}

	const query = `
SELECT id, room_id, winner_id, pot_amount, game_data
FROM game_history
WHERE room_id = $1
ORDER BY id DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]*History, 0, limit)
	for rows.Next() {
		h, err := getHistoryByRow(rows)
		if err != nil {
			return nil, err
		}

		history = append(history, h)
	}

	return history, rows.Err()
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
