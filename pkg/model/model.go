// Package model provides the room directory and round history stores
package model

import (
	"errors"
	"seotda-server/pkg/room"
)

// DefaultCapacity is used for rooms that do not specify how many players they seat
const DefaultCapacity = 4

// ErrInvalidCapacity is returned when a room is registered with an unusable capacity
var ErrInvalidCapacity = errors.New("room capacity must be at least 2")

var (
	_ room.RoomDirectory  = (*RoomStore)(nil)
	_ room.ResultRecorder = (*RoomStore)(nil)
	_ room.RoomDirectory  = (*MemoryStore)(nil)
	_ room.ResultRecorder = (*MemoryStore)(nil)
	_ room.RoomDirectory  = (*CachedDirectory)(nil)
)
