package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextFieldsAreWritten(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "checador", Level: zerolog.DebugLevel, Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithUserID(ctx, 42)
	logg.Error(ctx, "attendance.clock_failed", errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "checador", line["service"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, float64(42), line["user_id"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "attendance.clock_failed", line["message"])
}

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	logg.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logg *Logger
	ctx := logg.WithRequestID(context.Background(), "x")
	logg.Info(ctx, "nothing")
	assert.NotNil(t, ctx)
}
