package seotda

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Phase represents the current phase of the session
type Phase int

const (
	// PhaseWaiting is when players are joining and readying up
	PhaseWaiting Phase = iota
	// PhaseDealing is when cards are being dealt
	PhaseDealing
	// PhaseBetting is when players take turns betting
	PhaseBetting
	// PhaseReveal is when the remaining hands are compared
	PhaseReveal
	// PhaseResult is after the pot has been paid out
	PhaseResult
	// PhaseFinished is when a player has run out of chips
	PhaseFinished
)

var legalTransitions = map[Phase][]Phase{
	PhaseWaiting: {PhaseDealing},
	PhaseDealing: {PhaseBetting},
	PhaseBetting: {PhaseReveal, PhaseResult},
	PhaseReveal:  {PhaseResult},
	PhaseResult:  {PhaseDealing, PhaseWaiting, PhaseFinished},
}

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseDealing:
		return "dealing"
	case PhaseBetting:
		return "betting"
	case PhaseReveal:
		return "reveal"
	case PhaseResult:
		return "result"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// CanTransitionTo returns true if moving from p to next is allowed
func (p Phase) CanTransitionTo(next Phase) bool {
	for _, allowed := range legalTransitions[p] {
		if allowed == next {
			return true
		}
	}

	return false
}

// setPhase moves the session to the next phase
// An illegal transition is a sequencing bug and panics
func (g *Game) setPhase(next Phase) {
	if !g.phase.CanTransitionTo(next) {
		panic(fmt.Sprintf("illegal phase transition: %s -> %s", g.phase, next))
	}

	g.logger.WithFields(logrus.Fields{
		"from": g.phase.String(),
		"to":   next.String(),
	}).Trace("phase transition")

	g.phase = next
}
