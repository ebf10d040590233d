package qavalidator

import (
	"runtime"
)

// Option configures the validation engine.
type Option func(*Options)

// Options holds engine configuration.
type Options struct {
	// ParallelRules runs independent rules concurrently. Finding order
	// stays deterministic: per-rule results merge in ruleset order.
	ParallelRules bool

	// WorkerCount bounds rule-level concurrency.
	WorkerCount int

	// MaxFindings stops appending findings past this count (0 = unlimited).
	// Advisory notes are not capped.
	MaxFindings int

	// CollectMetrics enables the atomic counters.
	CollectMetrics bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		ParallelRules:  false,
		WorkerCount:    runtime.NumCPU(),
		MaxFindings:    0,
		CollectMetrics: true,
	}
}

// WithParallelRules enables concurrent rule execution.
func WithParallelRules(enable bool) Option {
	return func(o *Options) {
		o.ParallelRules = enable
	}
}

// WithWorkerCount sets the rule-level worker count.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.WorkerCount = n
		}
	}
}

// WithMaxFindings caps the number of findings per validation call.
func WithMaxFindings(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxFindings = n
		}
	}
}

// WithMetrics enables or disables metrics collection.
func WithMetrics(enable bool) Option {
	return func(o *Options) {
		o.CollectMetrics = enable
	}
}
