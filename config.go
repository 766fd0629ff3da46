package scanq

import (
	"runtime"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/scanq/metrics"
)

// config holds Scanner configuration.
type config struct {
	// Workers defines the fixed number of consumer goroutines per run.
	// Default: runtime.NumCPU().
	Workers int

	// QueueCapacity defines the bounded queue's capacity; the producer
	// blocks once this many records are in flight.
	// Default: 64.
	QueueCapacity int

	// Metrics receives queue and match instrumentation.
	// Default: metrics.NewNoopProvider().
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Workers:       runtime.NumCPU(),
		QueueCapacity: 64,
		Metrics:       metrics.NewNoopProvider(),
	}
}

// validateConfig checks invariants the options alone cannot guarantee.
func validateConfig(cfg *config) error {
	if cfg.Workers < 1 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "workers must be positive"))
	}
	if cfg.QueueCapacity < 1 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "queue capacity must be positive"))
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}
	return nil
}

// Option configures a Scanner. Use New(opts...) to construct one.
type Option func(*config) error

// WithWorkers sets the fixed worker count (must be > 0).
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithWorkers requires n > 0"))
		}
		cfg.Workers = n
		return nil
	}
}

// WithQueueCapacity sets the bounded queue capacity (must be > 0).
func WithQueueCapacity(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithQueueCapacity requires n > 0"))
		}
		cfg.QueueCapacity = n
		return nil
	}
}

// WithMetrics sets the metrics provider used to instrument runs.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a provider"))
		}
		cfg.Metrics = p
		return nil
	}
}
