package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/logging"
)

// failingHandler accepts every level and fails every record.
type failingHandler struct{ calls int }

func (f *failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (f *failingHandler) Handle(context.Context, slog.Record) error {
	f.calls++
	return errors.New("sink down")
}
func (f *failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }
func (f *failingHandler) WithGroup(string) slog.Handler      { return f }

func TestMultiHandlerKeepsDeliveringAfterFailure(t *testing.T) {
	var out bytes.Buffer
	bad := &failingHandler{}
	h := logging.NewMultiHandler(bad, nil, logging.NewJSONHandler(&out))

	rec := slog.NewRecord(time.Now(), slog.LevelError, "toggle failed", 0)
	err := h.Handle(context.Background(), rec)
	if err == nil || !strings.Contains(err.Error(), "sink down") {
		t.Errorf("Handle error = %v, want the failing sink's error", err)
	}
	if bad.calls != 1 {
		t.Errorf("failing handler called %d times", bad.calls)
	}
	if !strings.Contains(out.String(), "toggle failed") {
		t.Errorf("json handler missed the record: %q", out.String())
	}
}

func TestMultiHandlerEnabled(t *testing.T) {
	quiet := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})

	tests := []struct {
		name     string
		handlers []slog.Handler
		level    slog.Level
		want     bool
	}{
		{"no handlers", nil, slog.LevelError, false},
		{"only nil", []slog.Handler{nil}, slog.LevelError, false},
		{"below every threshold", []slog.Handler{quiet}, slog.LevelInfo, false},
		{"one enabled", []slog.Handler{quiet}, slog.LevelError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := logging.NewMultiHandler(tt.handlers...)
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}
