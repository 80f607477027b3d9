package seotda

import (
	"seotda-server/pkg/hwatu"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/action"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	RoomID          string         `json:"roomId"`
	Phase           string         `json:"phase"`
	Round           int            `json:"round"`
	Pot             int            `json:"pot"`
	CurrentBet      int            `json:"currentBet"`
	BaseBet         int            `json:"baseBet"`
	CurrentPlayerID string         `json:"currentPlayerId,omitempty"`
	Players         []*PlayerState `json:"players"`
	// Result is only populated after a round has been paid out
	Result *RoundResult `json:"result,omitempty"`
}

// PlayerState is the public state of a seated player
type PlayerState struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Chips  int    `json:"chips"`
	Bet    int    `json:"bet"`
	Folded bool   `json:"folded"`
	Ready  bool   `json:"ready"`
	Left   bool   `json:"left"`
	// CardsInHand is the number of cards the player has
	CardsInHand int `json:"cardsInHand"`
	// Hand is only shown once hands are revealed
	Hand      []hwatu.Card `json:"hand,omitempty"`
	HandLabel string       `json:"handLabel,omitempty"`
}

// Response is the per-recipient state
type Response struct {
	GameState *GameState   `json:"gameState"`
	Seated    bool         `json:"seated"`
	Chips     int          `json:"chips"`
	Hand      []hwatu.Card `json:"hand"`
	HandLabel string       `json:"handLabel,omitempty"`
	// CanAct is true if it is the recipient's turn
	CanAct           bool            `json:"canAct"`
	AvailableActions []action.Action `json:"availableActions"`
	CallAmount       int             `json:"callAmount"`
}

func (g *Game) handsRevealed() bool {
	switch g.phase {
	case PhaseReveal, PhaseResult, PhaseFinished:
		return true
	}

	return false
}

func (g *Game) getGameState() *GameState {
	players := make([]*PlayerState, len(g.players))
	revealed := g.handsRevealed()

	for i, p := range g.players {
		ps := &PlayerState{
			ID:          p.ID,
			Name:        p.Name,
			Chips:       p.chips,
			Bet:         p.bet,
			Folded:      p.folded,
			Ready:       p.ready,
			Left:        p.departed,
			CardsInHand: len(p.hand),
		}

		if revealed && !p.folded && len(p.hand) == 2 {
			ps.Hand = p.Hand()
			ps.HandLabel = p.value.Label
		}

		players[i] = ps
	}

	state := &GameState{
		RoomID:     g.roomID,
		Phase:      g.phase.String(),
		Round:      g.round,
		Pot:        g.pot,
		CurrentBet: g.currentBet,
		BaseBet:    g.options.BaseBet,
		Players:    players,
	}

	if g.phase == PhaseBetting {
		state.CurrentPlayerID = g.players[g.turnIndex].ID
	}

	if g.phase == PhaseResult || g.phase == PhaseFinished {
		state.Result = g.lastResult
	}

	return state
}

// GetPlayerState returns the state for the given player
// Only the recipient's own hand is included before the reveal
func (g *Game) GetPlayerState(playerID string) *playable.Response {
	response := &Response{
		GameState:        g.getGameState(),
		AvailableActions: []action.Action{},
	}

	if p, ok := g.idToPlayer[playerID]; ok {
		response.Seated = g.isSeated(playerID)
		response.Chips = p.chips
		response.Hand = p.Hand()
		if len(p.hand) == 2 {
			response.HandLabel = p.value.Label
		}

		if g.isTurn(p) {
			response.CanAct = true
			response.AvailableActions = g.availableActions(p)
			response.CallAmount = g.callAmount(p)
		}
	}

	return &playable.Response{
		Type: playable.TypeGameState,
		Data: response,
	}
}

func (g *Game) isTurn(p *Player) bool {
	return g.phase == PhaseBetting && g.players[g.turnIndex] == p
}

func (g *Game) callAmount(p *Player) int {
	return g.currentBet - p.bet
}

func (g *Game) availableActions(p *Player) []action.Action {
	actions := make([]action.Action, 0, 5)
	if g.callAmount(p) <= p.chips {
		actions = append(actions, action.Call)
	}

	if g.callAmount(p)+1 <= p.chips {
		actions = append(actions, action.Raise)
	}

	if g.callAmount(p)+g.pot/2 <= p.chips {
		actions = append(actions, action.Half)
	}

	return append(actions, action.AllIn, action.Fold)
}
