package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"coolschool/internal/logger"

	"github.com/stretchr/testify/assert"
)

func captureLogger(level slog.Level) *bytes.Buffer {
	var buf bytes.Buffer
	logger.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestLogger_Info(t *testing.T) {
	buf := captureLogger(slog.LevelInfo)

	logger.Info("article created", slog.Int64("article_id", 42), slog.String("page", "news"))

	output := buf.String()
	assert.Contains(t, output, "article created")
	assert.Contains(t, output, "article_id")
	assert.Contains(t, output, "42")
	assert.Contains(t, output, "news")
}

func TestLogger_ErrorContext(t *testing.T) {
	buf := captureLogger(slog.LevelError)

	logger.Info("dropped")
	logger.ErrorContext(context.Background(), "query failed", slog.String("error", "disk full"))

	output := buf.String()
	assert.NotContains(t, output, "dropped")
	assert.Contains(t, output, "query failed")
	assert.Contains(t, output, "disk full")
}

func TestLogger_WithRequestID(t *testing.T) {
	buf := captureLogger(slog.LevelInfo)

	logger.WithRequestID("req-123").Info("handling request")

	output := buf.String()
	assert.Contains(t, output, "request_id")
	assert.Contains(t, output, "req-123")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}
