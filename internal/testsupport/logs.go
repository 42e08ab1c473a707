package testsupport

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecorder is a slog.Handler that keeps every record it receives.
type LogRecorder struct {
	mu      *sync.Mutex
	records *[]slog.Record
	attrs   []slog.Attr
}

// NewLogger returns a logger accepting every level together with its recorder.
func NewLogger() (*slog.Logger, *LogRecorder) {
	rec := &LogRecorder{mu: &sync.Mutex{}, records: &[]slog.Record{}}
	return slog.New(rec), rec
}

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	record = record.Clone()
	record.AddAttrs(r.attrs...)
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.records = append(*r.records, record)
	return nil
}

func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), r.attrs...), attrs...)
	return &LogRecorder{mu: r.mu, records: r.records, attrs: merged}
}

func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Records returns a snapshot of the recorded entries.
func (r *LogRecorder) Records() []slog.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]slog.Record(nil), *r.records...)
}

// Count returns how many records were logged at exactly level.
func (r *LogRecorder) Count(level slog.Level) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the messages logged at level, in order.
func (r *LogRecorder) Messages(level slog.Level) []string {
	var out []string
	for _, rec := range r.Records() {
		if rec.Level == level {
			out = append(out, rec.Message)
		}
	}
	return out
}
