package game

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_game

// Repository defines storage operations for finished rounds
type Repository interface {
	// SaveRound stores a settled round with its hands and transactions
	SaveRound(ctx context.Context, round *entities.RoundRecord) error
	// GetRound returns nil when no round has the given ID
	GetRound(ctx context.Context, roundID string) (*entities.RoundRecord, error)
	// GetSessionRounds returns a session's rounds oldest first. A positive
	// limit keeps only the most recent ones.
	GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error)

	// Close closes any resources used by the repository
	Close() error
}
