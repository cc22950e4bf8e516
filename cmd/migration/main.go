package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/db/migrations"
)

type cli struct {
	EnvFile string `kong:"name='env-file',default='.env',help='Environment file to load before reading configuration'"`
	DB      string `kong:"name='db',default='',help='Path to SQLite database (defaults to blackjack.db in DATA_DIR)'"`

	Up     upCmd     `kong:"cmd,default='1',help='Apply pending migrations'"`
	Status statusCmd `kong:"cmd,help='List applied migrations'"`
}

type upCmd struct{}

func (upCmd) Run(m *migrations.Migrator, logger *logging.Logger) error {
	count, err := m.MigrateUp(context.Background())
	if err != nil {
		return err
	}
	logger.Info("Migrations complete", "applied", count)
	return nil
}

type statusCmd struct{}

func (statusCmd) Run(m *migrations.Migrator) error {
	ctx := context.Background()
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	all, err := m.Load()
	if err != nil {
		return err
	}

	done := make(map[string]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
		fmt.Printf("%s  applied  %s  %s\n", a.Version, a.AppliedAt.Format("2006-01-02 15:04:05"), a.Description)
	}
	for _, mig := range all {
		if !done[mig.Version] {
			fmt.Printf("%s  pending  %s\n", mig.Version, mig.Description)
		}
	}
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("blackjack-migrate"),
		kong.Description("Manage the round history schema"),
		kong.UsageOnError(),
	)

	logger := logging.NewLogger(os.Stderr, logging.INFO)

	dbPath := c.DB
	if dbPath == "" {
		cfg, err := config.Load(c.EnvFile)
		kctx.FatalIfErrorf(err)
		dbPath = cfg.SQLitePath()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		kctx.FatalIfErrorf(fmt.Errorf("error creating database directory: %w", err))
	}

	db, err := sql.Open("sqlite3", dbPath)
	kctx.FatalIfErrorf(err)
	defer db.Close()

	err = kctx.Run(migrations.NewMigrator(db, logger), logger)
	kctx.FatalIfErrorf(err)
}
