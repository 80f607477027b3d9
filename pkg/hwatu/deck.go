package hwatu

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Size is the number of cards in a seotda deck
const Size = 20

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrInsufficientCards is an error when Deal() asks for more cards than remain
var ErrInsufficientCards = errors.New("insufficient cards left in the deck")

// the two cards of each month, in month order
var monthKinds = [10][2]Kind{
	{Bright, Ribbon},
	{Animal, Ribbon},
	{Bright, Ribbon},
	{Animal, Ribbon},
	{Animal, Ribbon},
	{Animal, Ribbon},
	{Animal, Ribbon},
	{Bright, Animal},
	{Animal, Ribbon},
	{Animal, Junk},
}

// Deck is a seotda deck of twenty hwatu cards
type Deck struct {
	Cards []Card `json:"cards"`
	seed  int64
	rng   *rand.Rand
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		seed: -1,
	}

	d.buildDeck()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for i, kinds := range monthKinds {
		for _, kind := range kinds {
			cards = append(cards, Card{
				Month: i + 1,
				Kind:  kind,
			})
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the deck of cards
// A seed of 0 will use the current time. The random source is private to this deck.
func (d *Deck) Shuffle(seed int64) {
	if seed < 0 {
		panic("seed cannot be < 0")
	}

	// always shuffle from an unshuffled deck
	if len(d.Cards) != Size || d.seed != -1 {
		d.buildDeck()
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed)) // nolint:gosec

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// GetSeed returns the seed used to shuffle the deck
func (d *Deck) GetSeed() int64 {
	return d.seed
}

// HashCode returns a SHA1 hash code of the deck order
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, ErrEndOfDeck is returned
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) == 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// Deal removes n cards from the front of the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if !d.CanDraw(n) {
		return nil, fmt.Errorf("deal %d of %d: %w", n, len(d.Cards), ErrInsufficientCards)
	}

	cards := make([]Card, n)
	copy(cards, d.Cards[:n])
	d.Cards = d.Cards[n:]

	return cards, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
