package game

import (
	"io"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/entities"
)

func quietLogger() *logging.Logger {
	return logging.NewLogger(io.Discard, logging.ERROR)
}

var baseTime = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

func sampleRound(id, sessionID string, n int) *entities.RoundRecord {
	completed := baseTime.Add(time.Duration(n) * time.Minute)
	return &entities.RoundRecord{
		ID:          id,
		SessionID:   sessionID,
		StartedAt:   completed.Add(-30 * time.Second),
		CompletedAt: completed,
		DealerCards: []entities.Card{
			entities.NewCard(entities.Ten, entities.Hearts),
			entities.NewCard(entities.Seven, entities.Clubs),
		},
		DealerTotal: 17,
		Hands: []*entities.HandRecord{
			{
				Slot:    entities.MainHand,
				Cards:   []entities.Card{entities.NewCard(entities.Ten, entities.Spades), entities.NewCard(entities.Nine, entities.Spades)},
				Total:   19,
				Bet:     100,
				Outcome: entities.OutcomeWin,
				Payout:  200,
			},
		},
		BalanceAfter: 1100,
		Transactions: []*entities.Transaction{
			{ID: id + "-bet", RoundID: id, Amount: -100, Type: entities.TransactionTypeBet, Slot: entities.MainHand, Description: "Blackjack bet", Timestamp: completed.Add(-30 * time.Second), BalanceAfter: 900},
			{ID: id + "-payout", RoundID: id, Amount: 200, Type: entities.TransactionTypePayout, Slot: entities.MainHand, Description: "Main hand WIN", Timestamp: completed, BalanceAfter: 1100},
		},
	}
}
