package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	pgBatchSize     = 50
	pgFlushInterval = 5 * time.Second
)

// batchWriter persists a batch of log rows.
type batchWriter func(batch []models.SystemLog) error

// pgBuffer is shared by a PGHandler and every handler derived from it.
type pgBuffer struct {
	write  batchWriter
	mu     sync.Mutex
	rows   []models.SystemLog
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// PGHandler is an slog.Handler that batches ERROR+ logs to PostgreSQL.
// Well-known attributes become columns; everything else lands in extra.
type PGHandler struct {
	buf   *pgBuffer
	attrs []slog.Attr
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	return newPGHandler(func(batch []models.SystemLog) error {
		return db.CreateInBatches(batch, pgBatchSize).Error
	}, pgFlushInterval)
}

func newPGHandler(write batchWriter, interval time.Duration) *PGHandler {
	buf := &pgBuffer{
		write:  write,
		rows:   make([]models.SystemLog, 0, pgBatchSize),
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	buf.wg.Add(1)
	go buf.flushLoop()
	return &PGHandler{buf: buf}
}

func (b *pgBuffer) flushLoop() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ticker.C:
			b.flush()
		case <-b.done:
			b.flush()
			return
		}
	}
}

func (b *pgBuffer) flush() {
	b.mu.Lock()
	if len(b.rows) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.rows
	b.rows = make([]models.SystemLog, 0, pgBatchSize)
	b.mu.Unlock()

	if err := b.write(batch); err != nil {
		// Not through slog: this handler would receive the record again.
		slog.New(NewStdoutHandler("")).Warn("failed to flush system logs to DB", "error", err.Error(), "count", len(batch))
	}
}

// Stop flushes what is buffered and ends the background loop.
func (h *PGHandler) Stop() {
	h.buf.once.Do(func() {
		h.buf.ticker.Stop()
		close(h.buf.done)
	})
	h.buf.wg.Wait()
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

	extra := make(map[string]any)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "trace_id":
			entry.TraceID = a.Value.String()
		case "report_id":
			s := a.Value.String()
			entry.ReportID = &s
		case "product_identifier":
			entry.ProductIdentifier = a.Value.String()
		case "store_name":
			entry.StoreName = a.Value.String()
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			entry.LatencyMs = latencyMs(a.Value)
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.buf.mu.Lock()
	h.buf.rows = append(h.buf.rows, entry)
	needFlush := len(h.buf.rows) >= pgBatchSize
	h.buf.mu.Unlock()

	if needFlush {
		go h.buf.flush()
	}
	return nil
}

func latencyMs(v slog.Value) int {
	switch v.Kind() {
	case slog.KindInt64:
		return int(v.Int64())
	case slog.KindFloat64:
		return int(math.Round(v.Float64()))
	case slog.KindDuration:
		return int(v.Duration().Milliseconds())
	}
	return 0
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PGHandler{buf: h.buf, attrs: merged}
}

// WithGroup is ignored; rows have a flat layout.
func (h *PGHandler) WithGroup(name string) slog.Handler {
	return h
}
