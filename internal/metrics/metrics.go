package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about scoreboard
// operations. It is intentionally simple so it can be swapped for a real
// backend later; when OTel instruments are attached it mirrors everything
// into them. All methods are safe on a nil Recorder.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*operationStats
	otel  *otelInstruments
}

// NewRecorder returns a Recorder without any export backend.
func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*operationStats),
		otel:  otel,
	}
}

// RecordOperation increments counters for one scoreboard operation and
// stores the last observed latency.
func (r *Recorder) RecordOperation(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[op]
	if !ok {
		stats = &operationStats{}
		r.stats[op] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordOperation(op, duration, err)
	}
}

// RecordActiveGames adjusts the in-progress games gauge by delta.
func (r *Recorder) RecordActiveGames(delta int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordActiveGames(int64(delta))
}

// OperationCalls returns the total attempts recorded for an operation.
func (r *Recorder) OperationCalls(op string) int {
	return r.Snapshot(op).Calls
}

// OperationErrors returns the total failed attempts recorded for an operation.
func (r *Recorder) OperationErrors(op string) int {
	return r.Snapshot(op).Errors
}

// LastLatency returns the last recorded latency for an operation.
func (r *Recorder) LastLatency(op string) time.Duration {
	return r.Snapshot(op).LastLatency
}

// Snapshot is a copy of the current stats for one operation.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// Snapshot returns a copy of the current stats for the operation.
func (r *Recorder) Snapshot(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(op)
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}

func (r *Recorder) snapshot(op string) operationStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[op]; ok && stats != nil {
		return *stats
	}
	return operationStats{}
}
