package model

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingDirectory struct {
	lock       sync.Mutex
	exists     int
	capacities int
	err        error
	store      *MemoryStore
}

func (c *countingDirectory) RoomExists(ctx context.Context, roomID string) (bool, error) {
	c.lock.Lock()
	c.exists++
	err := c.err
	c.lock.Unlock()

	if err != nil {
		return false, err
	}

	return c.store.RoomExists(ctx, roomID)
}

func (c *countingDirectory) RoomCapacity(ctx context.Context, roomID string) (int, error) {
	c.lock.Lock()
	c.capacities++
	err := c.err
	c.lock.Unlock()

	if err != nil {
		return 0, err
	}

	return c.store.RoomCapacity(ctx, roomID)
}

func (c *countingDirectory) calls() (int, int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.exists, c.capacities
}

func TestCachedDirectory(t *testing.T) {
	a := assert.New(t)

	store := NewMemoryStore(false, 0)
	a.NoError(store.Add("room-1", 3))
	inner := &countingDirectory{store: store}

	c, err := NewCachedDirectory(inner, time.Minute)
	a.NoError(err)
	defer c.Close()

	exists, err := c.RoomExists(cbg, "room-1")
	a.NoError(err)
	a.True(exists)
	capacity, err := c.RoomCapacity(cbg, "room-1")
	a.NoError(err)
	a.Equal(3, capacity)
	c.Wait()

	for i := 0; i < 5; i++ {
		exists, _ = c.RoomExists(cbg, "room-1")
		a.True(exists)
		capacity, _ = c.RoomCapacity(cbg, "room-1")
		a.Equal(3, capacity)
	}

	existsCalls, capacityCalls := inner.calls()
	a.Equal(1, existsCalls)
	a.Equal(1, capacityCalls)

	// a changed room is picked up after invalidation
	a.NoError(store.Add("room-1", 5))
	c.Invalidate("room-1")
	capacity, _ = c.RoomCapacity(cbg, "room-1")
	a.Equal(5, capacity)
	_, capacityCalls = inner.calls()
	a.Equal(2, capacityCalls)
}

func TestCachedDirectory_ErrorsAreNotCached(t *testing.T) {
	a := assert.New(t)

	inner := &countingDirectory{store: NewMemoryStore(true, 0), err: errors.New("db down")}
	c, err := NewCachedDirectory(inner, time.Minute)
	a.NoError(err)
	defer c.Close()

	_, err = c.RoomExists(cbg, "room-1")
	a.EqualError(err, "db down")
	c.Wait()

	inner.lock.Lock()
	inner.err = nil
	inner.lock.Unlock()

	exists, err := c.RoomExists(cbg, "room-1")
	a.NoError(err)
	a.True(exists)

	existsCalls, _ := inner.calls()
	a.Equal(2, existsCalls)
}

func TestCachedDirectory_Expires(t *testing.T) {
	a := assert.New(t)

	inner := &countingDirectory{store: NewMemoryStore(true, 0)}
	c, err := NewCachedDirectory(inner, 50*time.Millisecond)
	a.NoError(err)
	defer c.Close()

	_, _ = c.RoomCapacity(cbg, "room-1")
	c.Wait()
	_, _ = c.RoomCapacity(cbg, "room-1")
	_, capacityCalls := inner.calls()
	a.Equal(1, capacityCalls)

	time.Sleep(100 * time.Millisecond)
	_, _ = c.RoomCapacity(cbg, "room-1")
	_, capacityCalls = inner.calls()
	a.Equal(2, capacityCalls)
}
