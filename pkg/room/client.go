package room

import (
	"context"
	"fmt"
	"seotda-server/internal/util"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/seotda"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ID identifies the connection in logs
	ID string

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close receives the reason when the server wants the connection closed
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	pitBoss *PitBoss

	// authPlayerID is the token subject, empty when tokens are not required
	authPlayerID string

	lock        sync.Mutex
	dealer      *Dealer
	playerID    string
	displayName string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, pitBoss *PitBoss, authPlayerID string) *Client {
	return &Client{
		Conn:         conn,
		ID:           uuid.New().String(),
		send:         make(chan interface{}, 256),
		Close:        make(chan string, 1),
		pitBoss:      pitBoss,
		authPlayerID: authPlayerID,
	}
}

// Send sends a message to the web client without blocking
// false is returned if the client's buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Kick asks the connection to close
func (c *Client) Kick(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.dealer == nil {
		return c.ID
	}

	return fmt.Sprintf("%s:%s:%s", c.ID, c.playerID, c.dealer.roomID)
}

// PlayerID returns the seated player, if any
func (c *Client) PlayerID() string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.playerID
}

func (c *Client) currentDealer() *Dealer {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.dealer
}

func (c *Client) attach(d *Dealer, playerID, name string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.dealer = d
	c.playerID = playerID
	c.displayName = name
}

// detach clears the client's room and returns the dealer it was attached to
// If only is not nil, the client is only detached from that dealer
func (c *Client) detach(only *Dealer) *Dealer {
	c.lock.Lock()
	defer c.lock.Unlock()

	d := c.dealer
	if d == nil || (only != nil && d != only) {
		return nil
	}

	c.dealer = nil
	c.playerID = ""
	c.displayName = ""
	return d
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	switch msg.Type {
	case playable.TypeJoinRoom:
		if err := c.join(msg); err != nil {
			logrus.WithError(err).WithField("client", c.String()).Debug("could not join room")
			c.Send(playable.ErrorResponse(msg.Context, err))
		}
	case playable.TypeLeaveRoom:
		d := c.detach(nil)
		if d == nil {
			c.Send(playable.ErrorResponse(msg.Context, ErrNotInRoom))
			return
		}

		d.RemoveClient(c)
		c.Send(playable.OK(msg.Context))
	default:
		d := c.currentDealer()
		if d == nil {
			c.Send(playable.ErrorResponse(msg.Context, ErrNotInRoom))
			return
		}

		d.ReceivedMessage(c, msg)
	}
}

func (c *Client) join(msg *playable.PayloadIn) error {
	if msg.RoomID == "" {
		return ErrRoomNotFound
	}

	if c.currentDealer() != nil {
		return ErrAlreadyInRoom
	}

	playerID := msg.PlayerID
	if c.authPlayerID != "" {
		if playerID == "" {
			playerID = c.authPlayerID
		} else if playerID != c.authPlayerID {
			return ErrPlayerMismatch
		}
	}

	if playerID == "" {
		return seotda.ErrPlayerIDRequired
	}

	name := msg.DisplayName
	if name == "" {
		name = util.GetRandomName()
	}

	_, err := c.pitBoss.Join(context.Background(), msg.RoomID, c, playerID, name, msg.Context)
	return err
}
