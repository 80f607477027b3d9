package handanalyzer

import (
	"errors"
	"fmt"
	"seotda-server/pkg/hwatu"
)

// ErrInvalidHandSize is returned when a hand does not have exactly two cards
// This can only happen if the session dealt incorrectly
var ErrInvalidHandSize = errors.New("a seotda hand must have exactly two cards")

// HandType represents the tier of a seotda hand
type HandType int

// hand types from weakest to strongest
const (
	Kkeut HandType = iota
	Special
	Ddang
	BrightPair
)

// base ranks for each tier, the tiers never overlap
const (
	specialBase    = 100
	ddangBase      = 200
	brightPairBase = 300
)

// Hand is the evaluated strength of a two card hand
type Hand struct {
	Type  HandType `json:"type"`
	Rank  int      `json:"rank"`
	Label string   `json:"label"`
}

func (h Hand) String() string {
	return h.Label
}

// Beats returns true if the hand is strictly stronger than the other hand
func (h Hand) Beats(other Hand) bool {
	return h.Rank > other.Rank
}

type monthPair [2]int

type namedCombination struct {
	months monthPair
	rank   int
	label  string
}

// bright pairs require at least one of the two cards to be a bright
var brightPairs = []namedCombination{
	{monthPair{3, 8}, brightPairBase, "3-8 Gwang-ttaeng"},
	{monthPair{1, 3}, brightPairBase - 1, "1-3 Gwang-ttaeng"},
	{monthPair{1, 8}, brightPairBase - 2, "1-8 Gwang-ttaeng"},
}

var specials = []namedCombination{
	{monthPair{1, 2}, specialBase + 6, "Ali"},
	{monthPair{1, 4}, specialBase + 5, "Doksa"},
	{monthPair{1, 9}, specialBase + 4, "Gu-ping"},
	{monthPair{1, 10}, specialBase + 3, "Jang-ping"},
	{monthPair{4, 10}, specialBase + 2, "Jang-sa"},
	{monthPair{4, 6}, specialBase + 1, "Se-ryuk"},
}

// Evaluate ranks a two card hand
// The order of the cards does not matter
func Evaluate(cards []hwatu.Card) (Hand, error) {
	if len(cards) != 2 {
		return Hand{}, fmt.Errorf("got %d cards: %w", len(cards), ErrInvalidHandSize)
	}

	low, high := cards[0], cards[1]
	if high.Less(low) {
		low, high = high, low
	}

	months := monthPair{low.Month, high.Month}

	if low.IsBright() || high.IsBright() {
		for _, combo := range brightPairs {
			if combo.months == months {
				return Hand{Type: BrightPair, Rank: combo.rank, Label: combo.label}, nil
			}
		}
	}

	if low.Month == high.Month {
		return Hand{
			Type:  Ddang,
			Rank:  ddangBase + low.Month,
			Label: ddangLabel(low.Month),
		}, nil
	}

	for _, combo := range specials {
		if combo.months == months {
			return Hand{Type: Special, Rank: combo.rank, Label: combo.label}, nil
		}
	}

	score := (low.Month + high.Month) % 10
	return Hand{
		Type:  Kkeut,
		Rank:  score,
		Label: kkeutLabel(score),
	}, nil
}

// MustEvaluate is like Evaluate, but panics on an invalid hand
func MustEvaluate(cards []hwatu.Card) Hand {
	hand, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}

	return hand
}

func ddangLabel(month int) string {
	if month == 10 {
		return "Jang-ttaeng"
	}

	return fmt.Sprintf("%d-ttaeng", month)
}

func kkeutLabel(score int) string {
	switch score {
	case 9:
		return "Gabo"
	case 0:
		return "Mang-tong"
	}

	return fmt.Sprintf("%d-kkeut", score)
}

// TypeName returns a human-readable name for the hand type
func TypeName(t HandType) string {
	switch t {
	case BrightPair:
		return "Bright Pair"
	case Ddang:
		return "Ddang"
	case Special:
		return "Special"
	case Kkeut:
		return "Kkeut"
	default:
		return "Unknown"
	}
}
