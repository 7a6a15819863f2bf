package boosting

import (
	"github.com/YuminosukeSato/boostviz/pkg/log"
)

// Option configures a boosting run.
type Option func(*config)

type config struct {
	logger    log.Logger
	callbacks []Callback
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("boosting")
	}
	return cfg
}

// WithLogger sets the logger receiving per-round records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCallbacks appends callbacks invoked after every round.
func WithCallbacks(callbacks ...Callback) Option {
	return func(c *config) {
		c.callbacks = append(c.callbacks, callbacks...)
	}
}
