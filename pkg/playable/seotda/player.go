package seotda

import (
	"seotda-server/pkg/hwatu"
	"seotda-server/pkg/playable/seotda/handanalyzer"
)

// Player is a seated participant in the session
// The connection is owned by the room, the player only knows its id
type Player struct {
	ID   string
	Name string

	chips int
	bet   int
	hand  []hwatu.Card
	value handanalyzer.Hand

	folded   bool
	ready    bool
	acted    bool
	departed bool
}

func newPlayer(id, name string, chips int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		chips: chips,
	}
}

// Chips returns the player's balance
func (p *Player) Chips() int {
	return p.chips
}

// Bet returns what the player has committed this round
func (p *Player) Bet() int {
	return p.bet
}

// Folded returns true if the player is out of the current round
func (p *Player) Folded() bool {
	return p.folded
}

// Hand returns a copy of the player's hand
func (p *Player) Hand() []hwatu.Card {
	if p.hand == nil {
		return nil
	}

	return append([]hwatu.Card{}, p.hand...)
}

// canAct is true if the scheduler should give the player a turn
func (p *Player) canAct() bool {
	return !p.folded && !p.departed && p.chips > 0
}

func (p *Player) commit(amount int) {
	p.chips -= amount
	p.bet += amount
}

func (p *Player) resetForRound() {
	p.bet = 0
	p.hand = nil
	p.value = handanalyzer.Hand{}
	p.folded = false
	p.acted = false
}
