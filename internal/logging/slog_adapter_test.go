// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	logger.Warn("service restarted",
		slog.String("service", "http-server"),
		slog.Int("attempt", 3),
		slog.Duration("backoff", 2*time.Second),
		slog.Bool("terminal", false),
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"http-server"`,
		`"attempt":3`,
		`"terminal":false`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf))).
		With("supervisor", "root").
		WithGroup("event").
		WithGroup("child")

	logger.Info("hook", slog.String("name", "maintenance"))

	out := buf.String()
	if !strings.Contains(out, `"supervisor":"root"`) || strings.Contains(out, `"event.child.supervisor"`) {
		t.Errorf("pre-set attribute missing: %s", out)
	}
	if !strings.Contains(out, `"event.child.name":"maintenance"`) {
		t.Errorf("grouped key missing: %s", out)
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled on a warn-level logger")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("error disabled on a warn-level logger")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
