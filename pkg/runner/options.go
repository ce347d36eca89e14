package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/morph/pkg/domain"
)

// Option defines a functional option for configuring the Runner.
type Option func(*options)

type options struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	clock  func() time.Time
	newID  func() string
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHooks registers lifecycle hooks. Repeated calls add hooks rather than
// replacing them.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithIDGenerator overrides how animation IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}
