package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	require.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	require.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	require.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestNew(t *testing.T) {
	l, err := New("debug", true)
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestWrap_WithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core)).With(String("session", "s-1"))

	l.Debug("hidden")
	l.Info("committed", Float64("x", 35), Int("elements", 2))
	l.Error("failed", Err(errors.New("boom")), Bool("retry", false))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "committed", entries[0].Message)
	ctx := entries[0].ContextMap()
	require.Equal(t, "s-1", ctx["session"])
	require.Equal(t, 35.0, ctx["x"])
	require.Equal(t, int64(2), ctx["elements"])
	require.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Warn("ignored")
	require.NoError(t, l.Sync())
}
