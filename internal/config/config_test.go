package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BLACKJACK_STARTING_BALANCE", "BLACKJACK_DECKS", "BLACKJACK_SEED", "BLACKJACK_MANUAL_DEAL", "STORAGE_TYPE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), cfg.StartingBalance)
	assert.Equal(t, 8, cfg.Decks)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.False(t, cfg.ManualDeal)
	assert.Equal(t, StorageMemory, cfg.StorageType)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BLACKJACK_STARTING_BALANCE", "250")
	t.Setenv("BLACKJACK_DECKS", "2")
	t.Setenv("BLACKJACK_SEED", "42")
	t.Setenv("BLACKJACK_MANUAL_DEAL", "true")
	t.Setenv("STORAGE_TYPE", "SQLite")
	t.Setenv("DATA_DIR", "/tmp/bj")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, int64(250), cfg.StartingBalance)
	assert.Equal(t, 2, cfg.Decks)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.ManualDeal)
	assert.Equal(t, StorageSQLite, cfg.StorageType)
	assert.Equal(t, filepath.Join("/tmp/bj", "blackjack.db"), cfg.SQLitePath())
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("BLACKJACK_STARTING_BALANCE", "")
	os.Unsetenv("BLACKJACK_STARTING_BALANCE")

	envFile := filepath.Join(t.TempDir(), "table.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BLACKJACK_STARTING_BALANCE=777\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, int64(777), cfg.StartingBalance)
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero balance", key: "BLACKJACK_STARTING_BALANCE", value: "0"},
		{name: "negative decks", key: "BLACKJACK_DECKS", value: "-1"},
		{name: "non numeric seed", key: "BLACKJACK_SEED", value: "abc"},
		{name: "bad bool", key: "BLACKJACK_MANUAL_DEAL", value: "sometimes"},
		{name: "unknown storage", key: "STORAGE_TYPE", value: "redis"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}
