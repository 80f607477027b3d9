package room

import (
	"context"
	"errors"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/seotda"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Dealer runs a single room
// Every access to the game happens on the dealer's run loop
type Dealer struct {
	roomID   string
	pitBoss  *PitBoss
	game     *seotda.Game
	recorder ResultRecorder
	logger   logrus.FieldLogger

	// clients maps each connection to its seated player
	// Note: only touched from within the run loop
	clients     map[*Client]string
	logMessages []*playable.LogMessage
	closed      bool

	execInRunLoop  chan func()
	done           chan struct{}
	closeOnce      sync.Once
	persistTimeout time.Duration
	persisting     sync.WaitGroup
}

// NewDealer creates a new dealer object
// This is called while the pit boss holds its lock, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, game *seotda.Game, recorder ResultRecorder, logger logrus.FieldLogger, persistTimeout time.Duration) *Dealer {
	if persistTimeout <= 0 {
		persistTimeout = DefaultOptions().PersistTimeout
	}

	return &Dealer{
		roomID:         game.RoomID(),
		pitBoss:        pitBoss,
		game:           game,
		recorder:       recorder,
		logger:         logger,
		clients:        make(map[*Client]string),
		execInRunLoop:  make(chan func(), 256),
		done:           make(chan struct{}),
		persistTimeout: persistTimeout,
	}
}

// RoomID returns the id of the room the dealer runs
func (d *Dealer) RoomID() string {
	return d.roomID
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// Done is closed once the room has been torn down
func (d *Dealer) Done() <-chan struct{} {
	return d.done
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")

	ticker := time.NewTicker(d.game.Interval())
	defer ticker.Stop()

	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-ticker.C:
			update, err := d.game.Tick()
			if err != nil {
				d.logger.WithError(err).WithField("type", "exception").Error("could not tick")
				continue
			}

			if update {
				d.afterGameEvent()
			}
		case msgs := <-d.game.LogChan():
			d.addLogMessages(msgs)
			d.broadcast(&playable.Response{
				Type: playable.TypeLog,
				Data: msgs,
			})
		case <-d.done:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// enqueue schedules fn on the run loop
func (d *Dealer) enqueue(fn func()) error {
	select {
	case <-d.done:
		return errShiftEnded
	default:
	}

	select {
	case d.execInRunLoop <- fn:
		return nil
	case <-d.done:
		return errShiftEnded
	}
}

// Join seats the player and attaches the client
// It blocks until the run loop has handled the request
func (d *Dealer) Join(c *Client, playerID, name, requestCtx string) error {
	errCh := make(chan error, 1)
	err := d.enqueue(func() {
		if d.closed {
			errCh <- errShiftEnded
			return
		}

		if err := d.game.Join(playerID, name); err != nil {
			errCh <- err
			return
		}

		d.clients[c] = playerID
		c.attach(d, playerID, name)
		errCh <- nil

		c.Send(playable.OK(requestCtx))
		if backlog := d.logBacklog(); len(backlog) > 0 {
			c.Send(&playable.Response{
				Type: playable.TypeLog,
				Data: backlog,
			})
		}

		d.logger.WithField("player", playerID).Info("player joined")
		d.broadcastState()
	})

	if err != nil {
		return err
	}

	select {
	case err := <-errCh:
		return err
	case <-d.done:
		select {
		case err := <-errCh:
			return err
		default:
			return errShiftEnded
		}
	}
}

// ReceivedMessage is called when a client sends a game message to the room
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	err := d.enqueue(func() {
		playerID, ok := d.clients[c]
		if !ok {
			c.Send(playable.ErrorResponse(msg.Context, ErrNotInRoom))
			return
		}

		updateState, err := d.game.Action(playerID, msg)
		if err != nil {
			log := d.logger.WithError(err).WithField("player", playerID)
			var ruleErr seotda.RuleError
			if errors.As(err, &ruleErr) {
				log.Debug("rejected action")
			} else {
				log.Warn("could not perform action")
			}

			c.Send(playable.ErrorResponse(msg.Context, err))
			return
		}

		c.Send(playable.OK(msg.Context))
		if updateState {
			d.afterGameEvent()
		}
	})

	if err != nil {
		c.Send(playable.ErrorResponse(msg.Context, ErrNotInRoom))
	}
}

// RemoveClient detaches the client and removes its player from the game
// Mid-round this folds the player. A client that is no longer attached is ignored.
func (d *Dealer) RemoveClient(c *Client) {
	_ = d.enqueue(func() {
		playerID, ok := d.clients[c]
		if !ok {
			return
		}

		delete(d.clients, c)
		d.logger.WithField("player", playerID).Info("player left")

		if d.game.Leave(playerID) {
			d.afterGameEvent()
		}

		if !d.closed && len(d.clients) == 0 && d.game.PlayerCount() == 0 {
			d.endShift("room is empty")
		}
	})
}

// afterGameEvent publishes a finished round, the new state, and tears the room down once the game is over
// Note: must only be called from the run loop
func (d *Dealer) afterGameEvent() {
	if result := d.game.TakeResult(); result != nil {
		d.persist(result)
		d.broadcast(&playable.Response{
			Type: playable.TypeGameResult,
			Data: result,
		})
	}

	d.broadcastState()

	if d.game.IsFinished() {
		d.endShift("game over")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcastState() {
	failed := make([]*Client, 0)
	for c, playerID := range d.clients {
		if !c.Send(d.game.GetPlayerState(playerID)) {
			failed = append(failed, c)
		}
	}

	d.dropClients(failed)
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(res *playable.Response) {
	failed := make([]*Client, 0)
	for c := range d.clients {
		if !c.Send(res) {
			failed = append(failed, c)
		}
	}

	d.dropClients(failed)
}

// dropClients disconnects clients that could not keep up
// The removal is queued from another goroutine, never inline
func (d *Dealer) dropClients(clients []*Client) {
	for _, c := range clients {
		d.logger.WithField("client", c.String()).Warn("client is not keeping up, disconnecting")
		c.Kick("client is not keeping up")
		go func(c *Client) {
			if c.detach(d) != nil {
				d.RemoveClient(c)
			}
		}(c)
	}
}

// persist records the round off the run loop
func (d *Dealer) persist(result *seotda.RoundResult) {
	if d.recorder == nil {
		return
	}

	d.persisting.Add(1)
	go func() {
		defer d.persisting.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.persistTimeout)
		defer cancel()

		if err := d.recorder.PersistRoundResult(ctx, d.roomID, result.WinnerID(), result.Pot, result); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"type":  "exception",
				"round": result.Round,
			}).Error("could not persist round result")
		}
	}()
}

// endShift tears the room down
// Connected clients are detached so they can join another room
// NOTE: must only be called from the run loop
func (d *Dealer) endShift(reason string) {
	if d.closed {
		return
	}

	d.closed = true
	for c := range d.clients {
		c.detach(d)
		c.Send(&playable.Response{
			Type:    playable.TypeStatus,
			Message: "room closed: " + reason,
		})
	}

	d.clients = make(map[*Client]string)
	d.pitBoss.dealerEnded(d)
	d.closeOnce.Do(func() {
		close(d.done)
	})
}

// waitForPersistence blocks until in-flight PersistRoundResult calls return
func (d *Dealer) waitForPersistence() {
	d.persisting.Wait()
}
