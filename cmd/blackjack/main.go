package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/terminal"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
	"github.com/fadedpez/blackjack/pkg/services/session"
)

type cli struct {
	EnvFile string `kong:"name='env-file',default='.env',help='Environment file to load before reading configuration'"`
	LogFile string `kong:"name='log-file',default='',help='Log destination (defaults to blackjack.log in DATA_DIR, - for stderr)'"`
	Debug   bool   `kong:"help='Log at debug level and dump every command result'"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("blackjack"),
		kong.Description("Single player blackjack against the house"),
		kong.UsageOnError(),
	)

	kctx.FatalIfErrorf(run(c))
}

func run(c cli) error {
	cfg, err := config.Load(c.EnvFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logOut, closeLog, err := openLog(c.LogFile, cfg.DataDir)
	if err != nil {
		return err
	}
	defer closeLog()

	level := logging.ParseLevel(cfg.LogLevel)
	if c.Debug {
		level = logging.DEBUG
	}
	logger := logging.NewLogger(logOut, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open round history: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Failed to close repository", "err", err)
		}
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	shoe := entities.NewShoe(cfg.Decks, rand.New(rand.NewSource(seed)))

	svc := session.NewService(shoe, repo, quartz.NewReal(), logger, session.Config{
		StartingBalance: cfg.StartingBalance,
		ManualDeal:      cfg.ManualDeal,
		Debug:           c.Debug,
	})
	logger.Info("Session started",
		"session", svc.ID(),
		"decks", cfg.Decks,
		"seed", seed,
		"storage", cfg.StorageType,
		"balance", cfg.StartingBalance)

	err = terminal.NewShell(svc, os.Stdin, os.Stdout).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openRepository builds the round history backend named by the configuration.
// The Elasticsearch archive sits on top of the SQLite store.
func openRepository(ctx context.Context, cfg *config.Config, logger *logging.Logger) (game.Repository, error) {
	switch cfg.StorageType {
	case config.StorageSQLite:
		return game.NewSQLiteRepository(ctx, cfg.SQLitePath(), logger)
	case config.StorageElasticsearch:
		base, err := game.NewSQLiteRepository(ctx, cfg.SQLitePath(), logger)
		if err != nil {
			return nil, err
		}
		repo, err := game.NewElasticsearchRepository(ctx, base, &game.ElasticsearchConfig{
			URL:      cfg.ElasticsearchURL,
			Username: cfg.ElasticsearchUsername,
			Password: cfg.ElasticsearchPassword,
			Index:    cfg.ElasticsearchIndex,
		})
		if err != nil {
			base.Close()
			return nil, err
		}
		return repo, nil
	default:
		return game.NewMemoryRepository(), nil
	}
}

// openLog keeps log output away from the table unless asked otherwise
func openLog(path, dataDir string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		path = filepath.Join(dataDir, "blackjack.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("error creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
