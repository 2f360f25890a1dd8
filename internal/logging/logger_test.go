package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvfold/internal/config"
	"github.com/katalvlaran/lvfold/internal/logging"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("folded", zap.Int("length", 4))
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "folded", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 4, entry["length"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewWithWriter(config.LogConfig{Level: "debug", Format: "console"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "debug")
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	_, err := logging.NewWithWriter(config.LogConfig{Level: "shout"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, logging.FromContext(context.Background(), nil), "falls back to a no-op logger")

	l, observed := logging.NewObserved(zapcore.DebugLevel)
	logging.FromContext(context.Background(), l).Info("plain")
	require.Len(t, observed.FilterMessage("plain").All(), 1)
	assert.NotContains(t, observed.FilterMessage("plain").All()[0].ContextMap(), "request.id")

	ctx := logging.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", logging.RequestIDFromContext(ctx))

	logging.FromContext(ctx, l).Info("hello")

	entries := observed.FilterMessage("hello").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request.id"])
}
