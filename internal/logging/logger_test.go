package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Production_JSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("production", &buf)
	require.NotNil(t, logger)

	_, ok := logger.Handler().(*slog.JSONHandler)
	assert.True(t, ok, "production logger should use JSONHandler, got %T", logger.Handler())

	logger.Info("listing fetched", "posts", 3)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "listing fetched", line["msg"])
	assert.Equal(t, float64(3), line["posts"])
}

func TestNewLogger_Development_TextHandler(t *testing.T) {
	for _, env := range []string{"development", "", "staging"} {
		logger := NewLogger(env, &bytes.Buffer{})
		_, ok := logger.Handler().(*slog.TextHandler)
		assert.True(t, ok, "%q logger should use TextHandler, got %T", env, logger.Handler())
	}
}

func TestNewLogger_Levels(t *testing.T) {
	ctx := context.Background()

	prod := NewLogger("production", &bytes.Buffer{})
	assert.True(t, prod.Handler().Enabled(ctx, slog.LevelInfo))
	assert.False(t, prod.Handler().Enabled(ctx, slog.LevelDebug))

	dev := NewLogger("development", &bytes.Buffer{})
	assert.True(t, dev.Handler().Enabled(ctx, slog.LevelDebug))
}
