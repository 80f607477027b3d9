package hwatu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the sub-type printed on a hwatu card
type Kind string

// kind constants
const (
	Bright Kind = "bright"
	Animal Kind = "animal"
	Ribbon Kind = "ribbon"
	Junk   Kind = "junk"
)

// Card is an individual hwatu card
// Cards are values and are never mutated once dealt
type Card struct {
	Month int  `json:"month"`
	Kind  Kind `json:"kind"`
}

// Points returns the traditional point value of the card
func (c Card) Points() int {
	switch c.Kind {
	case Bright:
		return 20
	case Animal:
		return 10
	case Ribbon:
		return 5
	case Junk:
		return 1
	}

	panic(fmt.Sprintf("unknown kind: %s", c.Kind))
}

// IsBright returns true if the card is a bright (gwang)
func (c Card) IsBright() bool {
	return c.Kind == Bright
}

func (c Card) String() string {
	return CardToString(c)
}

// Equal returns true if the cards are the same card
func (c Card) Equal(card Card) bool {
	return c.Month == card.Month && c.Kind == card.Kind
}

// Less orders cards by month, then by kind
func (c Card) Less(card Card) bool {
	if c.Month != card.Month {
		return c.Month < card.Month
	}

	return kindOrder(c.Kind) < kindOrder(card.Kind)
}

func kindOrder(k Kind) int {
	switch k {
	case Bright:
		return 0
	case Animal:
		return 1
	case Ribbon:
		return 2
	default:
		return 3
	}
}

var cardRx = regexp.MustCompile(`(?i)^(10|[1-9])([garj])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <month><kind> where month is 1-10 and kind in [garj] (g is gwang, the bright)
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	month, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var kind Kind
	switch strings.ToLower(match[2]) {
	case "g":
		kind = Bright
	case "a":
		kind = Animal
	case "r":
		kind = Ribbon
	case "j":
		kind = Junk
	}

	return Card{
		Month: month,
		Kind:  kind,
	}
}

// CardsFromString will return a slice of cards from a comma separated list
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		cards[i] = CardFromString(part)
	}

	return cards
}

// CardToString converts a card (3rd month bright) to a string (3g)
func CardToString(card Card) string {
	var kind string
	switch card.Kind {
	case Bright:
		kind = "g"
	case Animal:
		kind = "a"
	case Ribbon:
		kind = "r"
	case Junk:
		kind = "j"
	}

	return fmt.Sprintf("%d%s", card.Month, kind)
}

// CardsToString will convert a slice of cards to a string in the format of 1g,3r,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
