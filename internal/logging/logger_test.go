package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadedpez/blackjack/internal/types"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel(" WARN "))
	assert.Equal(t, INFO, ParseLevel("chatty"), "unknown levels fall back to info")
}

func TestLogErrorGameError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, DEBUG)

	logger.LogError(types.WrapError(types.ErrDatabaseError, "failed to save round", errors.New("locked")))

	out := buf.String()
	assert.Contains(t, out, "Game error occurred")
	assert.Contains(t, out, "DATABASE_ERROR")
	assert.Contains(t, out, "locked")
}

func TestLogErrorPlainError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, DEBUG)

	logger.LogError(errors.New("boom"))

	assert.Contains(t, buf.String(), "Unexpected error")
	assert.Contains(t, buf.String(), "boom")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, WARN)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
