package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migration represents a database migration
type Migration struct {
	Version     string
	Description string
	SQL         string
}

// AppliedMigration is a row of the migrations table
type AppliedMigration struct {
	Version     string
	Description string
	AppliedAt   time.Time
}

// Migrator applies versioned schema files to a database
type Migrator struct {
	db     *sql.DB
	source fs.FS
	dir    string
	logger *logging.Logger
}

// NewMigrator creates a migrator for the schema shipped with the binary
func NewMigrator(db *sql.DB, logger *logging.Logger) *Migrator {
	return NewMigratorFromFS(db, embedded, "sql", logger)
}

// NewMigratorFromFS creates a migrator reading NNN_description.sql files from dir in source
func NewMigratorFromFS(db *sql.DB, source fs.FS, dir string, logger *logging.Logger) *Migrator {
	if logger == nil {
		logger = logging.Default
	}
	return &Migrator{
		db:     db,
		source: source,
		dir:    dir,
		logger: logger,
	}
}

// Initialize creates the migrations table if it doesn't exist
func (m *Migrator) Initialize(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			version TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

// Applied returns the migrations already recorded, in version order
func (m *Migrator) Applied(ctx context.Context) ([]AppliedMigration, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version, description, applied_at FROM migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Description, &a.AppliedAt); err != nil {
			return nil, err
		}
		applied = append(applied, a)
	}

	return applied, rows.Err()
}

// Load reads every migration file, sorted by version
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(m.source, m.dir)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		content, err := fs.ReadFile(m.source, path.Join(m.dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// Parse version and description from filename (e.g., "001_create_rounds.sql")
		parts := strings.SplitN(strings.TrimSuffix(entry.Name(), ".sql"), "_", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid migration filename: %s", entry.Name())
		}

		migrations = append(migrations, Migration{
			Version:     parts[0],
			Description: strings.ReplaceAll(parts[1], "_", " "),
			SQL:         string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// apply runs one migration and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("error applying migration %s: %w", migration.Version, err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO migrations (version, description) VALUES (?, ?)",
		migration.Version,
		migration.Description,
	)
	if err != nil {
		return fmt.Errorf("error recording migration %s: %w", migration.Version, err)
	}

	return tx.Commit()
}

// MigrateUp applies all pending migrations and returns how many ran
func (m *Migrator) MigrateUp(ctx context.Context) (int, error) {
	if err := m.Initialize(ctx); err != nil {
		return 0, err
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}
	done := make(map[string]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}

	migrations, err := m.Load()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, migration := range migrations {
		if done[migration.Version] {
			continue
		}

		m.logger.Info("Applying migration", "version", migration.Version, "description", migration.Description)
		if err := m.apply(ctx, migration); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
