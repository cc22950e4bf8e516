package entities

import "time"

// TransactionType represents the type of balance movement
type TransactionType string

const (
	TransactionTypeBet       TransactionType = "BET"
	TransactionTypeSplit     TransactionType = "SPLIT"
	TransactionTypeInsurance TransactionType = "INSURANCE"
	TransactionTypePayout    TransactionType = "PAYOUT"
)

// Transaction represents a single change to the player's balance
type Transaction struct {
	ID           string          `json:"id"`            // Unique identifier, assigned when recorded
	RoundID      string          `json:"round_id"`      // Round the movement belongs to
	Amount       int64           `json:"amount"`        // Positive for additions, negative for stakes
	Type         TransactionType `json:"type"`          // Type of transaction
	Slot         HandSlot        `json:"slot"`          // Hand the movement belongs to, if any
	Description  string          `json:"description"`   // Human-readable description
	Timestamp    time.Time       `json:"timestamp"`     // When the transaction was recorded
	BalanceAfter int64           `json:"balance_after"` // Balance after this transaction
}
