package entities

import (
	"math/rand"
)

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

// Shoe is the multi-deck card source shared by every round of a session.
// Cards are drawn from the end of the sequence.
type Shoe struct {
	cards []Card
	decks int
	rng   *rand.Rand
}

// NewShoe builds a shuffled shoe of the given number of standard decks.
// rng must not be nil.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	s := &Shoe{decks: decks, rng: rng}
	s.Reshuffle()
	return s
}

// NewShoeFromCards restores a shoe whose remaining cards are known, for
// example from a saved snapshot. The cards are used in the given order.
func NewShoeFromCards(decks int, rng *rand.Rand, cards []Card) *Shoe {
	restored := make([]Card, len(cards))
	copy(restored, cards)
	return &Shoe{cards: restored, decks: decks, rng: rng}
}

// Shuffle randomizes the order of the remaining cards
func (s *Shoe) Shuffle() {
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Reshuffle discards the remaining cards, rebuilds a full shoe and shuffles it
func (s *Shoe) Reshuffle() {
	cards := make([]Card, 0, s.Size())
	for i := 0; i < s.decks; i++ {
		cards = append(cards, NewStandardDeck()...)
	}
	s.cards = cards
	s.Shuffle()
}

// Draw removes and returns the last card. It returns false if the shoe is empty.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	last := len(s.cards) - 1
	card := s.cards[last]
	s.cards = s.cards[:last]
	return card, true
}

// DrawWithReshuffle draws a card, reshuffling a full shoe first when empty.
// The second return value reports whether a reshuffle happened.
func (s *Shoe) DrawWithReshuffle() (Card, bool) {
	if card, ok := s.Draw(); ok {
		return card, false
	}
	s.Reshuffle()
	card, _ := s.Draw()
	return card, true
}

// Remaining returns the number of cards left to draw
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size returns the number of cards in a full shoe
func (s *Shoe) Size() int {
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Cards returns a copy of the remaining cards in draw-from-end order
func (s *Shoe) Cards() []Card {
	cards := make([]Card, len(s.cards))
	copy(cards, s.cards)
	return cards
}
