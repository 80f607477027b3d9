package seotda

import (
	"fmt"
	"seotda-server/internal/rng"
	"seotda-server/pkg/hwatu"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/action"
	"seotda-server/pkg/playable/seotda/handanalyzer"
	"seotda-server/pkg/playable/seotda/scheduler"
	"time"

	"github.com/sirupsen/logrus"
)

// Game is the seotda session for a single room
// It is not safe for concurrent use, the room's dealer serializes all access
type Game struct {
	roomID  string
	options Options

	players    []*Player
	idToPlayer map[string]*Player

	phase      Phase
	deck       *hwatu.Deck
	seed       int64
	pot        int
	currentBet int
	turnIndex  int
	round      int

	lastResult    *RoundResult
	pendingResult *RoundResult

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	pendingDealerAction *pendingDealerAction
}

// NewGame returns a new seotda session waiting for players
func NewGame(logger logrus.FieldLogger, roomID string, opts Options) (*Game, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if opts.Seeder == nil {
		opts.Seeder = rng.Crypto{}
	}

	return &Game{
		roomID:     roomID,
		options:    opts,
		players:    make([]*Player, 0, opts.Capacity),
		idToPlayer: make(map[string]*Player),
		phase:      PhaseWaiting,
		logger:     logger,
		logChan:    make(chan []*playable.LogMessage, 256),
	}, nil
}

// RoomID returns the room the session belongs to
func (g *Game) RoomID() string {
	return g.roomID
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// IsFinished returns true once the session has reached its terminal phase
func (g *Game) IsFinished() bool {
	return g.phase == PhaseFinished
}

// PlayerCount returns the number of seated players that have not left
func (g *Game) PlayerCount() int {
	count := 0
	for _, p := range g.players {
		if !p.departed {
			count++
		}
	}

	return count
}

func (g *Game) isSeated(playerID string) bool {
	p, ok := g.idToPlayer[playerID]
	return ok && !p.departed
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// TakeResult returns the result of the most recently finished round, once
func (g *Game) TakeResult() *RoundResult {
	result := g.pendingResult
	g.pendingResult = nil
	return result
}

// Interval determines how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return 250 * time.Millisecond
}

// Tick will check the state of the game and possibly move the state along
func (g *Game) Tick() (bool, error) {
	if g.pendingDealerAction == nil || time.Now().Before(g.pendingDealerAction.ExecuteAfter) {
		return false, nil
	}

	pending := g.pendingDealerAction.Action
	// clear before executing so the action can schedule the next one
	g.pendingDealerAction = nil

	switch pending {
	case dealerActionDeal:
		g.dealIfReady()
	default:
		panic(fmt.Sprintf("unknown dealer action: %d", pending))
	}

	return true, nil
}

// Action performs an inbound message for the player
// If updateState is true, every connected client should receive the new state
func (g *Game) Action(playerID string, message *playable.PayloadIn) (updateState bool, err error) {
	switch message.Type {
	case playable.TypeReady:
		err = g.Ready(playerID)
	case playable.TypeBet:
		var a action.Action
		if a, err = action.FromString(message.Action); err != nil {
			return false, RuleError(err.Error())
		}

		err = g.Bet(playerID, a, message.Amount)
	case playable.TypeNewGame:
		err = g.NewRound(playerID)
	default:
		return false, fmt.Errorf("%s: %w", message.Type, ErrUnknownMessageType)
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// Join seats a new player
func (g *Game) Join(playerID, name string) error {
	if playerID == "" {
		return ErrPlayerIDRequired
	}

	if g.phase == PhaseFinished {
		return ErrGameIsOver
	}

	if _, ok := g.idToPlayer[playerID]; ok {
		return ErrAlreadySeated
	}

	if g.phase != PhaseWaiting && g.phase != PhaseResult {
		return ErrRoomNotJoinable
	}

	if len(g.players) >= g.options.Capacity {
		return ErrRoomFull
	}

	p := newPlayer(playerID, name, g.options.StartingChips)
	g.players = append(g.players, p)
	g.idToPlayer[playerID] = p

	g.sendLogMessages(newLogMessage(playerID, "{} joined with ${%d}", p.chips))
	return nil
}

// Leave removes the player from the session
// Mid-round this folds the player, who stays in their seat until the payout.
// Leaving twice is a no-op and returns false.
func (g *Game) Leave(playerID string) bool {
	p, ok := g.idToPlayer[playerID]
	if !ok || p.departed {
		return false
	}

	g.sendLogMessages(newLogMessage(playerID, "{} left the room"))

	if g.phase != PhaseBetting {
		g.removePlayer(p)
		if g.phase == PhaseWaiting {
			g.requestDeal()
		}

		return true
	}

	p.departed = true
	p.ready = false
	wasTurn := g.isTurn(p)
	if !p.folded {
		p.folded = true
		g.sendLogMessages(newLogMessage(playerID, "{} forfeits the round"))
	}

	g.afterAction(wasTurn)
	return true
}

// Ready marks the player ready for the first deal
func (g *Game) Ready(playerID string) error {
	if g.phase == PhaseFinished {
		return ErrGameIsOver
	}

	p, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if g.phase != PhaseWaiting {
		return ErrNotWaitingPhase
	}

	if !p.ready {
		p.ready = true
		g.sendLogMessages(newLogMessage(playerID, "{} is ready"))
	}

	g.requestDeal()
	return nil
}

// NewRound moves a paid out round along
// The next round is dealt if enough players remain, otherwise the room goes back to waiting
func (g *Game) NewRound(playerID string) error {
	if g.phase == PhaseFinished {
		return ErrGameIsOver
	}

	if _, ok := g.idToPlayer[playerID]; !ok {
		return ErrPlayerNotFound
	}

	if g.phase != PhaseResult {
		return ErrNoRoundToContinue
	}

	if len(g.players) < g.options.MinPlayers {
		g.backToWaiting()
		return nil
	}

	g.requestDeal()
	return nil
}

// Bet performs a betting action for the player whose turn it is
func (g *Game) Bet(playerID string, a action.Action, amount int) error {
	if g.phase == PhaseFinished {
		return ErrGameIsOver
	}

	if g.phase != PhaseBetting {
		return ErrNotBettingPhase
	}

	p, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if !g.isTurn(p) {
		return ErrNotYourTurn
	}

	if !a.IsValid() {
		return RuleError(fmt.Sprintf("unknown action: %s", a))
	}

	if a.NeedsAmount() && amount <= 0 {
		return ErrInvalidAmount
	}

	switch a {
	case action.Call:
		need := g.callAmount(p)
		if need > p.chips {
			return ErrInsufficientChips
		}

		g.commit(p, need)
		g.sendLogMessages(newLogMessage(p.ID, "{} %s", a.LogMessage(need)))
	case action.Raise, action.Half:
		increment := amount
		if a == action.Half {
			increment = g.pot / 2
		}

		// the increment alone can never exceed the stack, this also bounds target
		if increment > p.chips {
			return ErrInsufficientChips
		}

		target := g.currentBet + increment
		need := target - p.bet
		if need > p.chips {
			return ErrInsufficientChips
		}

		g.commit(p, need)
		g.currentBet = target
		if increment == 0 {
			g.sendLogMessages(newLogMessage(p.ID, "{} %s", action.Call.LogMessage(need)))
		} else {
			g.sendLogMessages(newLogMessage(p.ID, "{} %s", a.LogMessage(target)))
		}
	case action.AllIn:
		need := p.chips
		g.commit(p, need)
		if p.bet > g.currentBet {
			g.currentBet = p.bet
		}

		g.sendLogMessages(newLogMessage(p.ID, "{} %s", a.LogMessage(need)))
	case action.Fold:
		p.folded = true
		g.sendLogMessages(newLogMessage(p.ID, "{} %s", a.LogMessage(0)))
	}

	p.acted = true
	g.afterAction(true)
	return nil
}

// afterAction checks whether the round is over and otherwise passes the turn
// advance is true if the player whose turn it was is done acting
func (g *Game) afterAction(advance bool) {
	contenders := g.contenders()
	if len(contenders) == 1 {
		g.awardForfeit(contenders[0])
		return
	}

	if len(contenders) == 0 {
		panic(fmt.Sprintf("round %d has no contenders", g.round))
	}

	if g.bettingComplete(contenders) {
		g.reveal(contenders)
		return
	}

	if !advance {
		return
	}

	next, err := scheduler.Next(g.eligible(), g.turnIndex)
	if err != nil {
		g.logger.WithError(fmt.Errorf("round %d: %w", g.round, err)).WithField("type", "exception").Error("could not schedule the next turn")
		g.reveal(contenders)
		return
	}

	g.turnIndex = next
}

// commit moves chips from the player into the pot
func (g *Game) commit(p *Player, amount int) {
	if amount < 0 || amount > p.chips {
		panic(fmt.Sprintf("cannot commit %d chips from a stack of %d", amount, p.chips))
	}

	p.commit(amount)
	g.pot += amount
}

func (g *Game) contenders() []*Player {
	contenders := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if !p.folded {
			contenders = append(contenders, p)
		}
	}

	return contenders
}

func (g *Game) eligible() []bool {
	eligible := make([]bool, len(g.players))
	for i, p := range g.players {
		eligible[i] = p.canAct()
	}

	return eligible
}

// bettingComplete is true when every contender has acted and matched the bet level or is all in
func (g *Game) bettingComplete(contenders []*Player) bool {
	for _, p := range contenders {
		if !p.acted {
			return false
		}

		if p.bet != g.currentBet && p.chips > 0 {
			return false
		}
	}

	return true
}

// requestDeal deals now, or schedules the deal if a start delay is configured
func (g *Game) requestDeal() {
	if !g.canDeal() {
		return
	}

	if g.options.StartDelay <= 0 {
		g.deal()
		return
	}

	if g.pendingDealerAction != nil {
		return
	}

	g.pendingDealerAction = &pendingDealerAction{
		Action:       dealerActionDeal,
		ExecuteAfter: time.Now().Add(g.options.StartDelay),
	}

	g.sendLogMessages(newLogMessage("", "The next round starts in %s", g.options.StartDelay))
}

func (g *Game) dealIfReady() {
	if g.canDeal() {
		g.deal()
		return
	}

	if g.phase == PhaseResult {
		g.backToWaiting()
	}
}

// canDeal checks the quorum for the current phase
func (g *Game) canDeal() bool {
	if len(g.players) < g.options.MinPlayers {
		return false
	}

	switch g.phase {
	case PhaseWaiting:
		for _, p := range g.players {
			if !p.ready {
				return false
			}
		}

		return true
	case PhaseResult:
		return true
	}

	return false
}

func (g *Game) deal() {
	g.setPhase(PhaseDealing)
	g.round++
	g.lastResult = nil

	g.seed = rng.Seed(g.options.Seeder)
	g.deck = hwatu.New()
	g.deck.Shuffle(g.seed)

	g.logger.WithFields(logrus.Fields{
		"round": g.round,
		"seed":  g.seed,
		"deck":  g.deck.HashCode(),
	}).Debug("dealing")

	g.pot = 0
	g.currentBet = g.options.BaseBet

	for _, p := range g.players {
		p.resetForRound()

		cards, err := g.deck.Deal(2)
		if err != nil {
			// capacity is validated against the deck size
			panic(fmt.Sprintf("round %d: %v", g.round, err))
		}

		p.hand = cards
		p.value = handanalyzer.MustEvaluate(cards)
	}

	start := (g.round - 1) % len(g.players)
	first, err := scheduler.First(g.eligible(), start)
	if err != nil {
		panic(fmt.Sprintf("round %d: %v", g.round, err))
	}

	g.turnIndex = first
	g.setPhase(PhaseBetting)

	g.sendLogMessages(newLogMessage("", "Round %d dealt, the bet is ${%d}", g.round, g.currentBet))
}

func (g *Game) awardForfeit(winner *Player) {
	g.setPhase(PhaseResult)

	result := g.newRoundResult([]*Player{winner}, []*Player{winner}, true)
	g.sendLogMessages(newLogMessage(winner.ID, "{} wins ${%d} uncontested", result.Pot))
	g.finishRound(result)
}

func (g *Game) reveal(contenders []*Player) {
	g.setPhase(PhaseReveal)

	var best handanalyzer.Hand
	winners := make([]*Player, 0, 1)
	for _, p := range contenders {
		switch {
		case len(winners) == 0 || p.value.Beats(best):
			best = p.value
			winners = []*Player{p}
		case p.value.Rank == best.Rank:
			winners = append(winners, p)
		}
	}

	for _, p := range contenders {
		lm := newLogMessage(p.ID, "{} shows %s", p.value.Label)
		lm.Cards = p.Hand()
		g.sendLogMessages(lm)
	}

	result := g.newRoundResult(winners, contenders, false)

	g.setPhase(PhaseResult)
	if result.IsSplit() {
		playerIDs := make([]string, len(winners))
		for i, w := range winners {
			playerIDs[i] = w.ID
		}

		g.sendLogMessages(newLogMessageWithPlayers(playerIDs, "{} split the pot of ${%d} with %s", result.Pot, best.Label))
	} else {
		g.sendLogMessages(newLogMessage(winners[0].ID, "{} wins ${%d} with %s", result.Pot, best.Label))
	}

	g.finishRound(result)
}

// newRoundResult pays the pot out to the winners and records the round
// The pot is split evenly, the indivisible remainder goes to the first winner in seating order
func (g *Game) newRoundResult(winners []*Player, shown []*Player, forfeit bool) *RoundResult {
	result := &RoundResult{
		RoomID:      g.roomID,
		Round:       g.round,
		WinnerIDs:   make([]string, len(winners)),
		WinnerNames: make([]string, len(winners)),
		Pot:         g.pot,
		Payouts:     make(map[string]int),
		Bets:        make(map[string]int),
		Hands:       make([]RevealedHand, 0, len(shown)),
		Forfeit:     forfeit,
		Balances:    make(map[string]int),
		Seed:        g.seed,
	}

	for _, p := range g.players {
		result.Bets[p.ID] = p.bet
	}

	if len(winners) > 0 {
		share := g.pot / len(winners)
		remainder := g.pot % len(winners)
		for i, w := range winners {
			amount := share
			if i == 0 {
				amount += remainder
			}

			w.chips += amount
			result.WinnerIDs[i] = w.ID
			result.WinnerNames[i] = w.Name
			result.Payouts[w.ID] = amount
		}
	}

	for _, p := range shown {
		result.Hands = append(result.Hands, RevealedHand{
			PlayerID: p.ID,
			Name:     p.Name,
			Cards:    p.Hand(),
			Label:    p.value.Label,
			Tier:     handanalyzer.TypeName(p.value.Type),
			Rank:     p.value.Rank,
		})
	}

	g.pot = 0
	for _, p := range g.players {
		p.bet = 0
		result.Balances[p.ID] = p.chips
	}

	return result
}

// finishRound publishes the result, clears out departed players and ends the game if anybody is broke
func (g *Game) finishRound(result *RoundResult) {
	g.lastResult = result
	g.pendingResult = result

	for _, p := range append([]*Player{}, g.players...) {
		if p.departed {
			g.removePlayer(p)
		}
	}

	for _, p := range g.players {
		if p.chips <= 0 {
			g.setPhase(PhaseFinished)
			g.sendLogMessages(newLogMessage(p.ID, "{} is out of chips, the game is over"))
			return
		}
	}
}

func (g *Game) backToWaiting() {
	g.setPhase(PhaseWaiting)
	g.currentBet = 0
	for _, p := range g.players {
		p.resetForRound()
		p.ready = false
	}

	g.sendLogMessages(newLogMessage("", "Waiting for players"))
}

func (g *Game) removePlayer(p *Player) {
	delete(g.idToPlayer, p.ID)
	for i, seated := range g.players {
		if seated == p {
			g.players = append(g.players[:i], g.players[i+1:]...)
			return
		}
	}
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	select {
	case g.logChan <- msg:
	default:
		g.logger.WithField("messages", len(msg)).Warn("log channel is full, dropping messages")
	}
}

func newLogMessage(playerID string, format string, a ...interface{}) *playable.LogMessage {
	return playable.SimpleLogMessage(playerID, format, a...)
}

func newLogMessageWithPlayers(playerIDs []string, format string, a ...interface{}) *playable.LogMessage {
	lm := playable.SimpleLogMessage("", format, a...)
	lm.PlayerIDs = playerIDs
	return lm
}
