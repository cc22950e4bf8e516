package entities

import "time"

// HandRecord is the settled state of one player hand
type HandRecord struct {
	Slot      HandSlot `json:"slot"`
	Cards     []Card   `json:"cards"`
	Total     int      `json:"total"`
	Bet       int64    `json:"bet"`
	Outcome   Outcome  `json:"outcome"`
	Payout    int64    `json:"payout"`
	Blackjack bool     `json:"blackjack"`
}

// RoundRecord is the history entry written when a round ends
type RoundRecord struct {
	ID           string         `json:"id"`
	SessionID    string         `json:"session_id"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  time.Time      `json:"completed_at"`
	DealerCards  []Card         `json:"dealer_cards"`
	DealerTotal  int            `json:"dealer_total"`
	Hands        []*HandRecord  `json:"hands"`
	InsuranceBet int64          `json:"insurance_bet"`
	Split        bool           `json:"split"`
	Folded       bool           `json:"folded"`
	BalanceAfter int64          `json:"balance_after"`
	Transactions []*Transaction `json:"transactions"`
}

// TotalWagered sums every stake placed during the round
func (r *RoundRecord) TotalWagered() int64 {
	total := r.InsuranceBet
	for _, h := range r.Hands {
		total += h.Bet
	}
	return total
}

// TotalReturned sums every payout credited at settlement
func (r *RoundRecord) TotalReturned() int64 {
	var total int64
	for _, h := range r.Hands {
		total += h.Payout
	}
	return total
}
