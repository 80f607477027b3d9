package seotda

import "time"

// dealerAction is an action that "dealer" would take, such as progressing the game
type dealerAction int

const (
	dealerActionDeal dealerAction = iota
)

type pendingDealerAction struct {
	Action       dealerAction
	ExecuteAfter time.Time
}
