package seotda

import "seotda-server/pkg/hwatu"

// RevealedHand is a hand shown at the end of a round
type RevealedHand struct {
	PlayerID string       `json:"playerId"`
	Name     string       `json:"name"`
	Cards    []hwatu.Card `json:"cards"`
	Label    string       `json:"label"`
	Tier     string       `json:"tier"`
	Rank     int          `json:"rank"`
}

// RoundResult is the outcome of one round
type RoundResult struct {
	RoomID      string   `json:"roomId"`
	Round       int      `json:"round"`
	WinnerIDs   []string `json:"winnerIds"`
	WinnerNames []string `json:"winnerNames"`
	Pot         int      `json:"pot"`
	// Payouts is what each winner received from the pot
	Payouts map[string]int `json:"payouts"`
	// Bets is what each player committed before payout
	Bets map[string]int `json:"bets"`
	// Hands holds the non-folded hands, only the survivor's on a forfeit
	Hands []RevealedHand `json:"hands"`
	// Forfeit is true if everyone else folded or left
	Forfeit  bool           `json:"forfeit"`
	Balances map[string]int `json:"balances"`
	Seed     int64          `json:"seed"`
}

// WinnerID returns the first winner in seating order
func (r *RoundResult) WinnerID() string {
	if len(r.WinnerIDs) == 0 {
		return ""
	}

	return r.WinnerIDs[0]
}

// IsSplit returns true if the pot was split between tied hands
func (r *RoundResult) IsSplit() bool {
	return len(r.WinnerIDs) > 1
}
