package wander

import "github.com/ardnew/ligature/log"

// DefaultMaxDepth is the default limit on nested function calls.
const DefaultMaxDepth = 10000

// Option configures parsing or evaluation behavior.
type Option func(*config)

// config holds the settings of a single parse or evaluation.
type config struct {
	logger   log.Logger
	maxDepth int
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxDepth limits how deeply function calls may nest. A call beyond the
// limit fails with [ErrCall] wrapping [ErrCallDepth]. Values less than 1
// remove the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

func makeConfig(opts ...Option) config {
	c := config{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
