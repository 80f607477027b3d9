package room

import (
	"context"
	"errors"
	"fmt"
	"seotda-server/pkg/playable/seotda"
	"sync"

	"github.com/sirupsen/logrus"
)

const joinAttempts = 3

// PitBoss is responsible for dispatching players to rooms
// The lock only guards the map, no game work happens while it is held
type PitBoss struct {
	lock    sync.Mutex
	dealers map[string]*Dealer

	directory RoomDirectory
	recorder  ResultRecorder
	options   Options
	logger    logrus.FieldLogger
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(directory RoomDirectory, recorder ResultRecorder, opts Options) *PitBoss {
	return &PitBoss{
		dealers:   make(map[string]*Dealer),
		directory: directory,
		recorder:  recorder,
		options:   opts,
		logger:    logrus.StandardLogger(),
	}
}

// Join seats the client's player in the room, creating the room's dealer on first use
func (p *PitBoss) Join(ctx context.Context, roomID string, c *Client, playerID, name, requestCtx string) (*Dealer, error) {
	exists, err := p.directory.RoomExists(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("could not look up room %s: %w", roomID, err)
	}

	if !exists {
		return nil, ErrRoomNotFound
	}

	for attempt := 0; attempt < joinAttempts; attempt++ {
		d, err := p.dealerFor(ctx, roomID)
		if err != nil {
			return nil, err
		}

		err = d.Join(c, playerID, name, requestCtx)
		if errors.Is(err, errShiftEnded) {
			// the room closed between the lookup and the join
			continue
		}

		if err != nil {
			return nil, err
		}

		return d, nil
	}

	return nil, fmt.Errorf("room %s is closing: %w", roomID, errShiftEnded)
}

func (p *PitBoss) dealerFor(ctx context.Context, roomID string) (*Dealer, error) {
	p.lock.Lock()
	d, ok := p.dealers[roomID]
	p.lock.Unlock()
	if ok {
		return d, nil
	}

	capacity, err := p.directory.RoomCapacity(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("could not look up capacity of room %s: %w", roomID, err)
	}

	opts := p.options.Game
	if capacity > 0 {
		opts.Capacity = capacity
	}

	logger := p.logger.WithField("room", roomID)
	game, err := seotda.NewGame(logger, roomID, opts)
	if err != nil {
		return nil, fmt.Errorf("could not create room %s: %w", roomID, err)
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	// another client may have created the room while the lock was released
	if d, ok := p.dealers[roomID]; ok {
		return d, nil
	}

	d = NewDealer(p, game, p.recorder, logger, p.options.PersistTimeout)
	d.StartShift()
	p.dealers[roomID] = d

	logger.Info("room opened")
	return d, nil
}

// ClientDisconnected is called when a client's connection goes away
// Calling it more than once for the same client is a no-op
func (p *PitBoss) ClientDisconnected(c *Client) {
	if d := c.detach(nil); d != nil {
		p.logger.WithField("client", c.String()).Debug("client disconnected")
		d.RemoveClient(c)
	}
}

// RoomCount returns the number of open rooms
func (p *PitBoss) RoomCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.dealers)
}

// dealer returns the open dealer for the room, if any
func (p *PitBoss) dealer(roomID string) (*Dealer, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	d, ok := p.dealers[roomID]
	return d, ok
}

// dealerEnded is called by a dealer whose room has been torn down
func (p *PitBoss) dealerEnded(d *Dealer) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.dealers[d.roomID] == d {
		delete(p.dealers, d.roomID)
		d.logger.Info("room closed")

		// the room may be edited or removed while nobody is in it
		if inv, ok := p.directory.(directoryInvalidator); ok {
			inv.Invalidate(d.roomID)
		}
	}
}
