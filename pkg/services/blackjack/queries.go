package blackjack

import "github.com/fadedpez/blackjack/pkg/entities"

// Snapshot is a read-only view of the table as the player sees it
type Snapshot struct {
	State        entities.RoundState
	Balance      int64
	Bet          int64
	SplitBet     int64
	InsuranceBet int64
	Active       entities.HandSlot

	Player      []entities.Card
	PlayerTotal int
	Split       []entities.Card
	SplitTotal  int
	HasSplit    bool

	Dealer      []entities.Card // hole card omitted until revealed
	DealerTotal int
	HoleHidden  bool

	Actions Actions
}

func (r *Round) Balance() int64 {
	return r.balance
}

func (r *Round) State() entities.RoundState {
	return r.state
}

// ActiveHand returns the hand commands currently apply to
func (r *Round) ActiveHand() entities.HandSlot {
	return r.active
}

func (r *Round) Bet() int64 {
	return r.bet
}

func (r *Round) SplitBet() int64 {
	return r.splitBet
}

func (r *Round) InsuranceBet() int64 {
	return r.insuranceBet
}

func (r *Round) Folded() bool {
	return r.folded
}

// PlayerTotals returns the main hand total and, after a split, the split hand total
func (r *Round) PlayerTotals() (main int, split int, hasSplit bool) {
	main = r.player.Total()
	if r.split == nil {
		return main, 0, false
	}
	return main, r.split.Total(), true
}

// DealerTotal returns the full dealer total when reveal is set or the hole
// card is already face up. Otherwise only the up card counts.
func (r *Round) DealerTotal(reveal bool) int {
	if r.dealer.Len() == 0 {
		return 0
	}
	if reveal || r.dealerRevealed {
		return r.dealer.Total()
	}
	return GetBestScore(r.dealer.Cards[:1])
}

// PlayerHand returns a copy of the main hand
func (r *Round) PlayerHand() *Hand {
	return r.player.Clone()
}

// SplitHand returns a copy of the split hand, or nil when there is none
func (r *Round) SplitHand() *Hand {
	if r.split == nil {
		return nil
	}
	return r.split.Clone()
}

// DealerHand returns a copy of the dealer's cards, including the hole card
func (r *Round) DealerHand() *Hand {
	return r.dealer.Clone()
}

// Results returns the settled hands of the last finished round
func (r *Round) Results() []*HandResult {
	results := make([]*HandResult, len(r.results))
	copy(results, r.results)
	return results
}

// Transactions returns the balance movements of the current round
func (r *Round) Transactions() []*entities.Transaction {
	txs := make([]*entities.Transaction, 0, len(r.ledger))
	for _, tx := range r.ledger {
		clone := *tx
		txs = append(txs, &clone)
	}
	return txs
}

// Snapshot returns the player's view of the table
func (r *Round) Snapshot() *Snapshot {
	snap := &Snapshot{
		State:        r.state,
		Balance:      r.balance,
		Bet:          r.bet,
		SplitBet:     r.splitBet,
		InsuranceBet: r.insuranceBet,
		Active:       r.active,
		Player:       r.player.Clone().Cards,
		PlayerTotal:  r.player.Total(),
		DealerTotal:  r.DealerTotal(false),
		Actions:      r.AvailableActions(),
	}

	if r.split != nil {
		snap.HasSplit = true
		snap.Split = r.split.Clone().Cards
		snap.SplitTotal = r.split.Total()
	}

	switch {
	case r.dealer.Len() == 0:
	case r.dealerRevealed:
		snap.Dealer = r.dealer.Clone().Cards
	default:
		snap.Dealer = []entities.Card{r.dealer.Cards[0]}
		snap.HoleHidden = r.dealer.Len() > 1
	}

	return snap
}

// Record builds the history entry for a settled round. The caller assigns
// identifiers and timestamps. It returns nil while the round is unfinished.
func (r *Round) Record() *entities.RoundRecord {
	if r.state != entities.StateSettled {
		return nil
	}

	record := &entities.RoundRecord{
		DealerCards:  r.dealer.Clone().Cards,
		DealerTotal:  r.dealer.Total(),
		InsuranceBet: r.insuranceBet,
		Split:        r.split != nil,
		Folded:       r.folded,
		BalanceAfter: r.balance,
		Transactions: r.Transactions(),
	}
	for _, res := range r.results {
		record.Hands = append(record.Hands, &entities.HandRecord{
			Slot:      res.Slot,
			Cards:     res.Cards,
			Total:     res.Total,
			Bet:       res.Bet,
			Outcome:   res.Outcome,
			Payout:    res.Payout,
			Blackjack: res.Blackjack,
		})
	}
	return record
}
