package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_FallsBackToInfoOnUnknownLevel(t *testing.T) {
	l, err := New("not-a-level", "console")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
}

func TestContextVariantsAttachRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := WithRequestID(context.Background(), "run-1")
	l.InfoContext(ctx, "scan started", StringField("source", "Congress"))
	l.ErrorContext(context.Background(), "no id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "Congress", entries[0].ContextMap()["source"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}
