package game

import (
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// esRoundDocument is the shape of a round in the Elasticsearch archive.
// Cards are stored as display strings so they can be aggregated as keywords.
type esRoundDocument struct {
	RoundID      string           `json:"round_id"`
	SessionID    string           `json:"session_id"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  time.Time        `json:"completed_at"`
	DealerCards  []string         `json:"dealer_cards"`
	DealerTotal  int              `json:"dealer_total"`
	Hands        []esHandDocument `json:"hands"`
	InsuranceBet int64            `json:"insurance_bet"`
	Split        bool             `json:"split"`
	Folded       bool             `json:"folded"`
	Wagered      int64            `json:"wagered"`
	Returned     int64            `json:"returned"`
	BalanceAfter int64            `json:"balance_after"`
}

type esHandDocument struct {
	Slot      string   `json:"slot"`
	Cards     []string `json:"cards"`
	Total     int      `json:"total"`
	Bet       int64    `json:"bet"`
	Outcome   string   `json:"outcome"`
	Payout    int64    `json:"payout"`
	Blackjack bool     `json:"blackjack"`
	Busted    bool     `json:"busted"`
}

const roundIndexMapping = `{
	"mappings": {
		"properties": {
			"round_id": { "type": "keyword" },
			"session_id": { "type": "keyword" },
			"started_at": { "type": "date" },
			"completed_at": { "type": "date" },
			"dealer_cards": { "type": "keyword" },
			"dealer_total": { "type": "integer" },
			"insurance_bet": { "type": "long" },
			"split": { "type": "boolean" },
			"folded": { "type": "boolean" },
			"wagered": { "type": "long" },
			"returned": { "type": "long" },
			"balance_after": { "type": "long" },
			"hands": {
				"type": "nested",
				"properties": {
					"slot": { "type": "keyword" },
					"cards": { "type": "keyword" },
					"total": { "type": "integer" },
					"bet": { "type": "long" },
					"outcome": { "type": "keyword" },
					"payout": { "type": "long" },
					"blackjack": { "type": "boolean" },
					"busted": { "type": "boolean" }
				}
			}
		}
	}
}`

func cardStrings(cards []entities.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func newRoundDocument(round *entities.RoundRecord) *esRoundDocument {
	doc := &esRoundDocument{
		RoundID:      round.ID,
		SessionID:    round.SessionID,
		StartedAt:    round.StartedAt,
		CompletedAt:  round.CompletedAt,
		DealerCards:  cardStrings(round.DealerCards),
		DealerTotal:  round.DealerTotal,
		Hands:        make([]esHandDocument, 0, len(round.Hands)),
		InsuranceBet: round.InsuranceBet,
		Split:        round.Split,
		Folded:       round.Folded,
		Wagered:      round.TotalWagered(),
		Returned:     round.TotalReturned(),
		BalanceAfter: round.BalanceAfter,
	}

	for _, h := range round.Hands {
		doc.Hands = append(doc.Hands, esHandDocument{
			Slot:      string(h.Slot),
			Cards:     cardStrings(h.Cards),
			Total:     h.Total,
			Bet:       h.Bet,
			Outcome:   string(h.Outcome),
			Payout:    h.Payout,
			Blackjack: h.Blackjack,
			Busted:    h.Outcome == entities.OutcomeBust,
		})
	}
	return doc
}
