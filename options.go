package genarena

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/genarena/internal/slot"
	"github.com/hupe1980/genarena/resource"
)

// MaxCapacity is the largest number of slots an arena can hold.
const MaxCapacity = slot.MaxLen

type options struct {
	initialCapacity  int
	maxCapacity      int
	segmentSize      int
	growth           GrowthPolicy
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		maxCapacity:      MaxCapacity,
		segmentSize:      slot.DefaultSegmentSize,
		growth:           Doubling{},
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

func (o *options) validate() error {
	if o.initialCapacity < 0 {
		return fmt.Errorf("%w: negative initial capacity %d", ErrInvalidOption, o.initialCapacity)
	}
	if o.maxCapacity <= 0 || o.maxCapacity > MaxCapacity {
		return fmt.Errorf("%w: max capacity %d not in (0, %d]", ErrInvalidOption, o.maxCapacity, MaxCapacity)
	}
	if o.initialCapacity > o.maxCapacity {
		return fmt.Errorf("%w: initial capacity %d exceeds max capacity %d", ErrInvalidOption, o.initialCapacity, o.maxCapacity)
	}
	if o.segmentSize < 0 {
		return fmt.Errorf("%w: negative segment size %d", ErrInvalidOption, o.segmentSize)
	}
	return nil
}

// Option configures an Arena.
type Option func(*options)

// WithInitialCapacity pre-allocates n free slots at construction.
// Default: 0 (the first insert grows the arena).
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = n
	}
}

// WithMaxCapacity bounds the number of slots the arena may ever hold.
// Inserts that would need more fail with ErrOutOfMemory.
// Default: MaxCapacity.
func WithMaxCapacity(n int) Option {
	return func(o *options) {
		o.maxCapacity = n
	}
}

// WithGrowthPolicy selects how the arena grows when it runs out of free slots.
// If nil is passed, Doubling is used.
//
// Example with a fixed-capacity arena:
//
//	a, _ := genarena.New[int](
//	    genarena.WithInitialCapacity(1024),
//	    genarena.WithGrowthPolicy(genarena.NoGrowth{}),
//	)
func WithGrowthPolicy(p GrowthPolicy) Option {
	return func(o *options) {
		if p == nil {
			p = Doubling{}
		}
		o.growth = p
	}
}

// WithSegmentSize sets the number of slots per storage segment, rounded up to
// a power of two. Segments are the unit of allocation; values never move once
// stored. Default: 256.
func WithSegmentSize(n int) Option {
	return func(o *options) {
		o.segmentSize = n
	}
}

// WithResourceController makes growth subject to the controller's memory
// budget and growth rate. A controller may be shared by many arenas.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &genarena.BasicMetricsCollector{}
//	a, _ := genarena.New[int](genarena.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Grows: %d\n", stats.InsertCount, stats.GrowCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for growth and slot retirement.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := genarena.NewJSONLogger(slog.LevelDebug)
//	a, _ := genarena.New[int](genarena.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}
