package blackjack

import "github.com/fadedpez/blackjack/pkg/entities"

// Event is something observable that happened while a command ran.
// Adapters decide how to present each one.
type Event interface {
	EventName() string
}

// BetPlaced is emitted when a new round starts
type BetPlaced struct {
	Amount  int64
	Balance int64
}

func (BetPlaced) EventName() string { return "BetPlaced" }

// CardDealt is emitted for every card drawn from the shoe. Total is the
// visible total of the receiving hand after the card was added.
type CardDealt struct {
	Slot     entities.HandSlot
	Card     entities.Card
	FaceDown bool
	Total    int
}

func (CardDealt) EventName() string { return "CardDealt" }

// ShoeReshuffled is emitted when a draw found the shoe empty
type ShoeReshuffled struct {
	Message string
}

func (ShoeReshuffled) EventName() string { return "ShoeReshuffled" }

// BlackjackDealt is emitted when the opening two cards total 21
type BlackjackDealt struct {
	Message string
}

func (BlackjackDealt) EventName() string { return "BlackjackDealt" }

// InsuranceOffered is emitted when the dealer shows an Ace
type InsuranceOffered struct {
	Stake int64
}

func (InsuranceOffered) EventName() string { return "InsuranceOffered" }

// SplitOffered is emitted when the opening hand is a pair
type SplitOffered struct {
	Rank entities.Rank
}

func (SplitOffered) EventName() string { return "SplitOffered" }

// InsurancePlaced is emitted when the insurance stake is taken
type InsurancePlaced struct {
	Stake   int64
	Balance int64
}

func (InsurancePlaced) EventName() string { return "InsurancePlaced" }

// HandSplit is emitted when the pair is divided into two hands
type HandSplit struct {
	MainCard  entities.Card
	SplitCard entities.Card
	Bet       int64
	Balance   int64
}

func (HandSplit) EventName() string { return "HandSplit" }

// HandBusted is emitted when a player hand goes over 21
type HandBusted struct {
	Slot    entities.HandSlot
	Total   int
	Message string
}

func (HandBusted) EventName() string { return "HandBusted" }

// ActiveHandChanged is emitted when play moves to the split hand
type ActiveHandChanged struct {
	Slot entities.HandSlot
}

func (ActiveHandChanged) EventName() string { return "ActiveHandChanged" }

// DealerRevealed is emitted when the hole card is turned over
type DealerRevealed struct {
	HoleCard entities.Card
	Total    int
}

func (DealerRevealed) EventName() string { return "DealerRevealed" }

// DealerStood is emitted when the dealer stops drawing
type DealerStood struct {
	Total int
	Bust  bool
}

func (DealerStood) EventName() string { return "DealerStood" }

// HandSettled is emitted once per player hand at the end of a round
type HandSettled struct {
	Slot        entities.HandSlot
	Outcome     entities.Outcome
	Total       int
	DealerTotal int
	Bet         int64
	Payout      int64
	Message     string
}

func (HandSettled) EventName() string { return "HandSettled" }

// RoundFolded is emitted when the player abandons the round
type RoundFolded struct {
	Forfeited int64
	Message   string
}

func (RoundFolded) EventName() string { return "RoundFolded" }

// RoundSettled is the last event of every finished round
type RoundSettled struct {
	Balance int64
	Message string
}

func (RoundSettled) EventName() string { return "RoundSettled" }
