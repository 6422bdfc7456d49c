package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second
)

// PGHandler is an slog.Handler that batches ERROR+ records into
// system_logs. Attributes added with WithAttrs are kept, so a request
// logger carrying trace_id and path persists them.
type PGHandler struct {
	db     *gorm.DB
	shared *pgBuffer
	attrs  []slog.Attr
}

type pgBuffer struct {
	mu      sync.Mutex
	entries []models.SystemLog
	ticker  *time.Ticker
	done    chan struct{}
	exited  chan struct{}
	stopped sync.Once
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	h := &PGHandler{
		db: db,
		shared: &pgBuffer{
			entries: make([]models.SystemLog, 0, batchSize),
			ticker:  time.NewTicker(flushInterval),
			done:    make(chan struct{}),
			exited:  make(chan struct{}),
		},
	}
	go h.flushLoop()
	return h
}

func (h *PGHandler) flushLoop() {
	for {
		select {
		case <-h.shared.ticker.C:
			h.flush()
		case <-h.shared.done:
			h.flush()
			close(h.shared.exited)
			return
		}
	}
}

func (h *PGHandler) flush() {
	b := h.shared
	b.mu.Lock()
	if len(b.entries) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.entries
	b.entries = make([]models.SystemLog, 0, batchSize)
	b.mu.Unlock()

	// Warn, so the failure is not buffered here again.
	if err := h.db.CreateInBatches(batch, batchSize).Error; err != nil {
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop ends the flush loop and returns once the buffer has been written.
func (h *PGHandler) Stop() {
	h.shared.stopped.Do(func() {
		h.shared.ticker.Stop()
		close(h.shared.done)
	})
	<-h.shared.exited
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "path":
			entry.Path = a.Value.String()
		case "trace_id", "request_id":
			entry.TraceID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			if f, ok := a.Value.Any().(float64); ok {
				entry.LatencyMs = int(math.Round(f))
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(collect)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	b := h.shared
	b.mu.Lock()
	b.entries = append(b.entries, entry)
	needFlush := len(b.entries) >= batchSize
	b.mu.Unlock()

	if needFlush {
		go h.flush()
	}
	return nil
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PGHandler{db: h.db, shared: h.shared, attrs: merged}
}

func (h *PGHandler) WithGroup(name string) slog.Handler {
	return h
}
