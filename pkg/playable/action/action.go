package action

import (
	"encoding/json"
	"fmt"
)

// Action represents a betting action a player can take
type Action string

// action constants
const (
	Call  Action = "call"
	Raise Action = "raise"
	Half  Action = "half"
	AllIn Action = "all_in"
	Fold  Action = "fold"
)

var allowedActions = map[Action]bool{
	Call:  true,
	Raise: true,
	Half:  true,
	AllIn: true,
	Fold:  true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case Half:
		return "Half"
	case AllIn:
		return "All In"
	case Fold:
		return "Fold"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// NeedsAmount returns true if the action requires an amount in the payload
func (a Action) NeedsAmount() bool {
	return a == Raise
}

// LogMessage returns a message formatted for the log
// amount is the bet level after the action, or the chips committed for a call
func (a Action) LogMessage(amount int) string {
	switch a {
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", amount)
	case Half:
		return fmt.Sprintf("bet half the pot, raising to ${%d}", amount)
	case AllIn:
		return fmt.Sprintf("went all in for ${%d}", amount)
	case Fold:
		return "folded"
	}

	return ""
}
