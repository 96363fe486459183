package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", "json", &buf)
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept", "steps", 6)
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.Contains(t, buf.String(), `"steps":6`)

	_, err = NewLogger("loud", "text", &buf)
	require.Error(t, err)
	_, err = NewLogger("info", "xml", &buf)
	require.Error(t, err)
}
