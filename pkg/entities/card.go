package entities

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

// Rank represents a card rank
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "Jack"
	Queen Rank = "Queen"
	King  Rank = "King"
	Ace   Rank = "Ace"
)

// Suits lists the four suits in deck construction order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks lists the thirteen ranks in deck construction order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Card represents a playing card. Cards are values and never change once dealt.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of the card
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// IsValid reports whether the card has a known rank and suit
func (c Card) IsValid() bool {
	rankOK, suitOK := false, false
	for _, r := range Ranks {
		if r == c.Rank {
			rankOK = true
			break
		}
	}
	for _, s := range Suits {
		if s == c.Suit {
			suitOK = true
			break
		}
	}
	return rankOK && suitOK
}

// NewStandardDeck returns the 52 cards of one standard deck, unshuffled
func NewStandardDeck() []Card {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}
