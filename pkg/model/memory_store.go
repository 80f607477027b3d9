package model

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps rooms and round history in memory
// It is used when no database is configured
type MemoryStore struct {
	open            bool
	defaultCapacity int

	lock    sync.Mutex
	rooms   map[string]int
	history []*History
}

// NewMemoryStore returns an empty store
// If open is true, every room id exists with the default capacity
func NewMemoryStore(open bool, defaultCapacity int) *MemoryStore {
	if defaultCapacity <= 0 {
		defaultCapacity = DefaultCapacity
	}

	return &MemoryStore{
		open:            open,
		defaultCapacity: defaultCapacity,
		rooms:           make(map[string]int),
		history:         make([]*History, 0),
	}
}

// Add registers a room
func (m *MemoryStore) Add(roomID string, capacity int) error {
	if capacity < 2 {
		return ErrInvalidCapacity
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.rooms[roomID] = capacity
	return nil
}

// RoomExists returns true if the room was added or the store is open
func (m *MemoryStore) RoomExists(_ context.Context, roomID string) (bool, error) {
	if roomID == "" {
		return false, nil
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	_, ok := m.rooms[roomID]
	return ok || m.open, nil
}

// RoomCapacity returns the room's capacity
func (m *MemoryStore) RoomCapacity(_ context.Context, roomID string) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if capacity, ok := m.rooms[roomID]; ok {
		return capacity, nil
	}

	if m.open {
		return m.defaultCapacity, nil
	}

	return 0, nil
}

// PersistRoundResult records the round
// The snapshot is stored as JSON, the same as RoomStore does
func (m *MemoryStore) PersistRoundResult(ctx context.Context, roomID, winnerID string, pot int, snapshot interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.history = append(m.history, &History{
		ID:       int64(len(m.history) + 1),
		RoomID:   roomID,
		WinnerID: winnerID,
		Pot:      pot,
		GameData: b,
	})

	return nil
}

// RecentHistory returns the room's most recent rounds, newest first
func (m *MemoryStore) RecentHistory(_ context.Context, roomID string, limit int) ([]*History, error) {
	if limit <= 0 {
		limit = 25
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	history := make([]*History, 0, limit)
	for i := len(m.history) - 1; i >= 0 && len(history) < limit; i-- {
		if m.history[i].RoomID == roomID {
			history = append(history, m.history[i])
		}
	}

	return history, nil
}
