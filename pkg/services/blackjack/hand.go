package blackjack

import (
	"strings"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// Hand represents an ordered set of dealt cards
type Hand struct {
	Cards []entities.Card
}

// NewHand creates a new blackjack hand
func NewHand(cards ...entities.Card) *Hand {
	h := &Hand{Cards: make([]entities.Card, 0, len(cards)+2)}
	h.Cards = append(h.Cards, cards...)
	return h
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(card entities.Card) {
	h.Cards = append(h.Cards, card)
}

// Total returns the best total for the hand
func (h *Hand) Total() int {
	return GetBestScore(h.Cards)
}

// IsSoft reports whether an Ace is still being counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := scoreCards(h.Cards)
	return soft > 0
}

// IsBlackjack is true for a two card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Total() == BlackjackTotal
}

// IsBust checks if a hand exceeds 21
func (h *Hand) IsBust() bool {
	return h.Total() > BlackjackTotal
}

// CanSplit is true for exactly two cards of the same rank
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.Cards)
}

// Clone returns a copy that shares no state with h
func (h *Hand) Clone() *Hand {
	return NewHand(h.Cards...)
}

func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, card := range h.Cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, ", ")
}
