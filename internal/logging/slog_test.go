// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "error", true)
	logger.Debug("resolved host", "host", "https://adb-1.example.net")

	if !strings.Contains(buf.String(), "resolved host") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", false)
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected logger from context to write, got %q", buf.String())
	}

	// A context without a logger yields a usable discard logger.
	FromContext(context.Background()).Info("dropped")
}

func TestPresentError(t *testing.T) {
	got := PresentError("create space", errors.New("401: Bearer dapi0123456789abcdef0123 rejected"))
	want := "create space: 401: Bearer *** rejected"
	if got != want {
		t.Errorf("PresentError() = %q, want %q", got, want)
	}
	if PresentError("x", nil) != "" {
		t.Error("nil error should present as empty string")
	}
}
