package statistics

import (
	"context"
	"fmt"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
)

// Service aggregates the round history of a session
type Service struct {
	repository game.Repository
}

// NewService creates a new statistics service
func NewService(repository game.Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// GetSessionStatistics summarizes every recorded round of a session
func (s *Service) GetSessionStatistics(ctx context.Context, sessionID string) (*entities.SessionStatistics, error) {
	rounds, err := s.repository.GetSessionRounds(ctx, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("error loading rounds for session %s: %w", sessionID, err)
	}

	stats := &entities.SessionStatistics{SessionID: sessionID}
	for _, round := range rounds {
		Accumulate(stats, round)
	}
	return stats, nil
}

// GetRecentRounds returns up to limit of the session's latest rounds, oldest first
func (s *Service) GetRecentRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	return s.repository.GetSessionRounds(ctx, sessionID, limit)
}

// Accumulate adds one round to stats
func Accumulate(stats *entities.SessionStatistics, round *entities.RoundRecord) {
	stats.RoundsPlayed++
	stats.TotalWagered += round.TotalWagered()
	stats.TotalReturned += round.TotalReturned()

	if round.Split {
		stats.Splits++
	}
	if round.InsuranceBet > 0 {
		stats.Insurances++
	}
	if round.Folded {
		stats.Folds++
	}

	for _, hand := range round.Hands {
		stats.HandsPlayed++
		if hand.Blackjack {
			stats.Blackjacks++
		}

		switch hand.Outcome {
		case entities.OutcomeWin:
			stats.Wins++
		case entities.OutcomePush:
			stats.Pushes++
		case entities.OutcomeBust:
			stats.Busts++
			stats.Losses++
		case entities.OutcomeLose, entities.OutcomeFold:
			stats.Losses++
		}
	}

	if round.CompletedAt.After(stats.LastUpdated) {
		stats.LastUpdated = round.CompletedAt
	}
}
