package session

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/statistics"
)

// Config holds the table settings for a session
type Config struct {
	StartingBalance int64
	ManualDeal      bool
	Debug           bool // dump every result at debug level
}

// Service serializes commands against one round and records each finished
// round to the repository. It is safe for concurrent use.
type Service struct {
	mu sync.Mutex

	id     string
	round  *blackjack.Round
	repo   game.Repository
	stats  *statistics.Service
	clock  quartz.Clock
	logger *logging.Logger
	debug  bool

	startedAt time.Time
	stamps    []stamp // identity of each ledger entry in the current round
}

type stamp struct {
	id string
	at time.Time
}

// NewService starts a session drawing from shoe
func NewService(shoe *entities.Shoe, repo game.Repository, clock quartz.Clock, logger *logging.Logger, cfg Config) *Service {
	var opts []blackjack.Option
	if cfg.ManualDeal {
		opts = append(opts, blackjack.WithManualDeal())
	}

	id := uuid.NewString()
	return &Service{
		id:     id,
		round:  blackjack.NewRound(shoe, cfg.StartingBalance, opts...),
		repo:   repo,
		stats:  statistics.NewService(repo),
		clock:  clock,
		logger: logger.With("session", id),
		debug:  cfg.Debug,
	}
}

// ID returns the session identifier used for round history
func (s *Service) ID() string {
	return s.id
}

func (s *Service) PlaceBet(ctx context.Context, amount int64) (*blackjack.Result, error) {
	return s.apply(ctx, blackjack.ActionPlaceBet, func() (*blackjack.Result, error) {
		return s.round.PlaceBet(amount)
	})
}

func (s *Service) Deal(ctx context.Context) (*blackjack.Result, error) {
	return s.apply(ctx, blackjack.ActionDeal, s.round.Deal)
}

func (s *Service) Hit(ctx context.Context) (*blackjack.Result, error) {
	return s.apply(ctx, blackjack.ActionHit, s.round.Hit)
}

func (s *Service) Stand(ctx context.Context) (*blackjack.Result, error) {
	return s.apply(ctx, blackjack.ActionStand, s.round.Stand)
}

func (s *Service) Split(ctx context.Context) (*blackjack.Result, error) {
	return s.apply(ctx, blackjack.ActionSplit, s.round.Split)
}

func (s *Service) PlaceInsurance(ctx context.Context) (*blackjack.Result, error) {
	return s.apply(ctx, blackjack.ActionInsurance, s.round.PlaceInsurance)
}

func (s *Service) Fold(ctx context.Context) (*blackjack.Result, error) {
	return s.apply(ctx, blackjack.ActionFold, s.round.Fold)
}

// Snapshot returns the player's view of the table
func (s *Service) Snapshot() *blackjack.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.round.Snapshot()
}

func (s *Service) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.round.Balance()
}

// Transactions returns the current round's ledger with identifiers and times
func (s *Service) Transactions() []*entities.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stampedTransactions("")
}

// Statistics summarizes the rounds recorded so far in this session
func (s *Service) Statistics(ctx context.Context) (*entities.SessionStatistics, error) {
	stats, err := s.stats.GetSessionStatistics(ctx, s.id)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "Could not load statistics", err)
	}
	return stats, nil
}

// RecentRounds returns up to limit of the latest recorded rounds, oldest first
func (s *Service) RecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	rounds, err := s.stats.GetRecentRounds(ctx, s.id, limit)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "Could not load round history", err)
	}
	return rounds, nil
}

func (s *Service) apply(ctx context.Context, action blackjack.Action, command func() (*blackjack.Result, error)) (*blackjack.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := command()
	if err != nil {
		var gameErr *types.GameError
		if types.As(err, &gameErr) {
			s.logger.Debug("Rejected action", "action", action, "code", gameErr.Code, "state", s.round.State())
		} else {
			s.logger.LogError(err)
		}
		return nil, err
	}

	now := s.clock.Now()
	if action == blackjack.ActionPlaceBet {
		s.startedAt = now
		s.stamps = nil
	}
	s.stampNew(now)

	s.logger.Debug("Action applied", "action", action, "state", res.State, "balance", res.Balance, "events", len(res.Events))
	if s.debug {
		s.logger.Debug("Result", "dump", litter.Sdump(res))
	}

	if res.Over {
		s.recordRound(ctx, now)
	}

	return res, nil
}

// stampNew assigns an ID and time to ledger entries created by the last command
func (s *Service) stampNew(now time.Time) {
	for len(s.stamps) < len(s.round.Transactions()) {
		s.stamps = append(s.stamps, stamp{id: uuid.NewString(), at: now})
	}
}

func (s *Service) stampedTransactions(roundID string) []*entities.Transaction {
	txs := s.round.Transactions()
	for i, tx := range txs {
		if i < len(s.stamps) {
			tx.ID = s.stamps[i].id
			tx.Timestamp = s.stamps[i].at
		}
		tx.RoundID = roundID
	}
	return txs
}

// recordRound saves the settled round. Storage failures are logged and do
// not undo the round.
func (s *Service) recordRound(ctx context.Context, completedAt time.Time) {
	record := s.round.Record()
	if record == nil {
		return
	}

	record.ID = uuid.NewString()
	record.SessionID = s.id
	record.StartedAt = s.startedAt
	record.CompletedAt = completedAt
	record.Transactions = s.stampedTransactions(record.ID)

	if err := s.repo.SaveRound(ctx, record); err != nil {
		s.logger.LogError(types.WrapError(types.ErrDatabaseError, "failed to save round", err))
		return
	}

	s.logger.Info("Round recorded",
		"round", record.ID,
		"wagered", record.TotalWagered(),
		"returned", record.TotalReturned(),
		"balance", record.BalanceAfter)
}
