package genarena

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called synchronously from arena operations; keep them cheap.
type MetricsCollector interface {
	// RecordInsert is called after each insert; err is nil if successful.
	RecordInsert(err error)

	// RecordRemove is called after each remove; hit reports whether a value
	// was removed (false for stale or unknown handles).
	RecordRemove(hit bool)

	// RecordGrow is called after each growth attempt with the number of
	// slots requested.
	RecordGrow(slots int, err error)

	// RecordRetire is called when a slot is retired after generation overflow.
	RecordRetire()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(error)    {}
func (NoopMetricsCollector) RecordRemove(bool)     {}
func (NoopMetricsCollector) RecordGrow(int, error) {}
func (NoopMetricsCollector) RecordRetire()         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// It is safe for concurrent use, so one collector may serve several arenas.
type BasicMetricsCollector struct {
	InsertCount  atomic.Int64
	InsertErrors atomic.Int64
	RemoveCount  atomic.Int64
	RemoveMisses atomic.Int64
	GrowCount    atomic.Int64
	GrowErrors   atomic.Int64
	GrownSlots   atomic.Int64
	RetireCount  atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(err error) {
	b.InsertCount.Add(1)
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(hit bool) {
	b.RemoveCount.Add(1)
	if !hit {
		b.RemoveMisses.Add(1)
	}
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(slots int, err error) {
	b.GrowCount.Add(1)
	if err != nil {
		b.GrowErrors.Add(1)
		return
	}
	b.GrownSlots.Add(int64(slots))
}

// RecordRetire implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRetire() {
	b.RetireCount.Add(1)
}

// MetricsStats is a point-in-time snapshot of a BasicMetricsCollector.
type MetricsStats struct {
	InsertCount  int64
	InsertErrors int64
	RemoveCount  int64
	RemoveMisses int64
	GrowCount    int64
	GrowErrors   int64
	GrownSlots   int64
	RetireCount  int64
}

// GetStats returns current metrics as a snapshot.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	return MetricsStats{
		InsertCount:  b.InsertCount.Load(),
		InsertErrors: b.InsertErrors.Load(),
		RemoveCount:  b.RemoveCount.Load(),
		RemoveMisses: b.RemoveMisses.Load(),
		GrowCount:    b.GrowCount.Load(),
		GrowErrors:   b.GrowErrors.Load(),
		GrownSlots:   b.GrownSlots.Load(),
		RetireCount:  b.RetireCount.Load(),
	}
}
