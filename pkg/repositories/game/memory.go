package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of round ID to round
	rounds map[string]*entities.RoundRecord
	// Map of session ID to its rounds in completion order
	sessionRounds map[string][]*entities.RoundRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rounds:        make(map[string]*entities.RoundRecord),
		sessionRounds: make(map[string][]*entities.RoundRecord),
	}
}

// SaveRound stores a round and appends it to its session history
func (r *MemoryRepository) SaveRound(ctx context.Context, round *entities.RoundRecord) error {
	if round == nil || round.ID == "" {
		return fmt.Errorf("round must have an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rounds[round.ID]; exists {
		return fmt.Errorf("round %s already saved", round.ID)
	}

	r.rounds[round.ID] = round
	r.sessionRounds[round.SessionID] = append(r.sessionRounds[round.SessionID], round)
	return nil
}

// GetRound retrieves a round by ID
func (r *MemoryRepository) GetRound(ctx context.Context, roundID string) (*entities.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	round, exists := r.rounds[roundID]
	if !exists {
		return nil, nil
	}
	return round, nil
}

// GetSessionRounds retrieves the rounds played in a session
func (r *MemoryRepository) GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rounds := r.sessionRounds[sessionID]
	if rounds == nil {
		return []*entities.RoundRecord{}, nil
	}

	// If we have more rounds than the limit, return only the most recent ones
	if limit > 0 && len(rounds) > limit {
		rounds = rounds[len(rounds)-limit:]
	}

	out := make([]*entities.RoundRecord, len(rounds))
	copy(out, rounds)
	return out, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}
