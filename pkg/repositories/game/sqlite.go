package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/db/migrations"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository, applying any pending
// schema migrations
func NewSQLiteRepository(ctx context.Context, dbPath string, logger *logging.Logger) (*SQLiteRepository, error) {
	// Ensure the directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	// Open the database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Apply migrations
	migrator := migrations.NewMigrator(db, logger)
	if _, err := migrator.MigrateUp(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveRound stores a round, its hands and its transactions in one transaction
func (r *SQLiteRepository) SaveRound(ctx context.Context, round *entities.RoundRecord) error {
	if round == nil || round.ID == "" {
		return fmt.Errorf("round must have an ID")
	}

	dealerJSON, err := json.Marshal(round.DealerCards)
	if err != nil {
		return err
	}

	// Begin transaction
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO rounds (
			id, session_id, started_at, completed_at, dealer_cards, dealer_total,
			insurance_bet, split, folded, balance_after
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		round.ID, round.SessionID, round.StartedAt, round.CompletedAt, dealerJSON, round.DealerTotal,
		round.InsuranceBet, round.Split, round.Folded, round.BalanceAfter)
	if err != nil {
		return err
	}

	for _, hand := range round.Hands {
		cardsJSON, err := json.Marshal(hand.Cards)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO hands (
				round_id, slot, cards, total, bet, outcome, payout, blackjack
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err = tx.ExecContext(ctx, query,
			round.ID, hand.Slot, cardsJSON, hand.Total, hand.Bet, hand.Outcome, hand.Payout, hand.Blackjack)
		if err != nil {
			return err
		}
	}

	for _, t := range round.Transactions {
		query := `
			INSERT INTO transactions (
				id, round_id, amount, type, slot, description, timestamp, balance_after
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err = tx.ExecContext(ctx, query,
			t.ID, round.ID, t.Amount, t.Type, t.Slot, t.Description, t.Timestamp, t.BalanceAfter)
		if err != nil {
			return err
		}
	}

	// Commit transaction
	return tx.Commit()
}

// GetRound retrieves a round by ID
func (r *SQLiteRepository) GetRound(ctx context.Context, roundID string) (*entities.RoundRecord, error) {
	query := `
		SELECT id, session_id, started_at, completed_at, dealer_cards, dealer_total,
			   insurance_bet, split, folded, balance_after
		FROM rounds
		WHERE id = ?`

	round, err := scanRound(r.db.QueryRowContext(ctx, query, roundID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, round); err != nil {
		return nil, err
	}
	return round, nil
}

// GetSessionRounds retrieves the rounds played in a session
func (r *SQLiteRepository) GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}

	query := `
		SELECT id, session_id, started_at, completed_at, dealer_cards, dealer_total,
			   insurance_bet, split, folded, balance_after
		FROM rounds
		WHERE session_id = ?
		ORDER BY seq DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var newestFirst []*entities.RoundRecord
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		newestFirst = append(newestFirst, round)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rounds := make([]*entities.RoundRecord, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		if err := r.loadChildren(ctx, newestFirst[i]); err != nil {
			return nil, err
		}
		rounds = append(rounds, newestFirst[i])
	}
	return rounds, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (*entities.RoundRecord, error) {
	var (
		round      entities.RoundRecord
		dealerJSON []byte
	)

	err := row.Scan(
		&round.ID, &round.SessionID, &round.StartedAt, &round.CompletedAt, &dealerJSON, &round.DealerTotal,
		&round.InsuranceBet, &round.Split, &round.Folded, &round.BalanceAfter,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(dealerJSON, &round.DealerCards); err != nil {
		return nil, fmt.Errorf("error decoding dealer cards: %w", err)
	}
	return &round, nil
}

// loadChildren fills in the hands and transactions of a round
func (r *SQLiteRepository) loadChildren(ctx context.Context, round *entities.RoundRecord) error {
	hands, err := r.db.QueryContext(ctx, `
		SELECT slot, cards, total, bet, outcome, payout, blackjack
		FROM hands
		WHERE round_id = ?
		ORDER BY id`, round.ID)
	if err != nil {
		return err
	}
	defer hands.Close()

	for hands.Next() {
		var (
			hand      entities.HandRecord
			cardsJSON []byte
		)
		if err := hands.Scan(&hand.Slot, &cardsJSON, &hand.Total, &hand.Bet, &hand.Outcome, &hand.Payout, &hand.Blackjack); err != nil {
			return err
		}
		if err := json.Unmarshal(cardsJSON, &hand.Cards); err != nil {
			return fmt.Errorf("error decoding hand cards: %w", err)
		}
		round.Hands = append(round.Hands, &hand)
	}
	if err := hands.Err(); err != nil {
		return err
	}

	txs, err := r.db.QueryContext(ctx, `
		SELECT id, amount, type, slot, description, timestamp, balance_after
		FROM transactions
		WHERE round_id = ?
		ORDER BY timestamp, rowid`, round.ID)
	if err != nil {
		return err
	}
	defer txs.Close()

	for txs.Next() {
		var (
			t  entities.Transaction
			ts time.Time
		)
		if err := txs.Scan(&t.ID, &t.Amount, &t.Type, &t.Slot, &t.Description, &ts, &t.BalanceAfter); err != nil {
			return err
		}
		t.RoundID = round.ID
		t.Timestamp = ts
		round.Transactions = append(round.Transactions, &t)
	}
	return txs.Err()
}
