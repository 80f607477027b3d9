package model

import (
	"context"
	"fmt"
	"seotda-server/pkg/room"
	"time"

	"github.com/dgraph-io/ristretto"
)

// CachedDirectory fronts a room directory with a TTL cache
// Lookups that fail are not cached
type CachedDirectory struct {
	directory room.RoomDirectory
	cache     *ristretto.Cache
	ttl       time.Duration
}

// NewCachedDirectory wraps directory, caching answers for ttl
func NewCachedDirectory(directory room.RoomDirectory, ttl time.Duration) (*CachedDirectory, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create room cache: %w", err)
	}

	return &CachedDirectory{
		directory: directory,
		cache:     cache,
		ttl:       ttl,
	}, nil
}

// RoomExists returns true if the room exists
func (c *CachedDirectory) RoomExists(ctx context.Context, roomID string) (bool, error) {
	key := "exists:" + roomID
	if v, ok := c.cache.Get(key); ok {
		if exists, ok := v.(bool); ok {
			return exists, nil
		}
	}

	exists, err := c.directory.RoomExists(ctx, roomID)
	if err != nil {
		return false, err
	}

	c.cache.SetWithTTL(key, exists, 1, c.ttl)
	return exists, nil
}

// RoomCapacity returns how many players the room seats
func (c *CachedDirectory) RoomCapacity(ctx context.Context, roomID string) (int, error) {
	key := "capacity:" + roomID
	if v, ok := c.cache.Get(key); ok {
		if capacity, ok := v.(int); ok {
			return capacity, nil
		}
	}

	capacity, err := c.directory.RoomCapacity(ctx, roomID)
	if err != nil {
		return 0, err
	}

	c.cache.SetWithTTL(key, capacity, 1, c.ttl)
	return capacity, nil
}

// Invalidate drops the cached answers for the room
func (c *CachedDirectory) Invalidate(roomID string) {
	c.cache.Del("exists:" + roomID)
	c.cache.Del("capacity:" + roomID)
}

// Wait blocks until pending cache writes are visible
func (c *CachedDirectory) Wait() {
	c.cache.Wait()
}

// Close stops the cache's background goroutines
func (c *CachedDirectory) Close() {
	c.cache.Close()
}
