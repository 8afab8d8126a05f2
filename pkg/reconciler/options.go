package reconciler

import (
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/pkg/errors"
	"github.com/agentstation/crmsync/pkg/logging"
)

type options struct {
	events logging.Recorder
	now    func() time.Time
	logger *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		events: logging.NopRecorder,
		now:    func() time.Time { return utc.Now().Time },
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithEventLog sets where "already exists" and "creating new" events go.
func WithEventLog(events logging.Recorder) Option {
	return func(o *options) error {
		if events == nil {
			return &errors.ValidationError{
				Field:   "events",
				Message: "cannot be nil",
			}
		}
		o.events = events
		return nil
	}
}

// WithClock sets the clock used for the lead's expected close date.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.now = now
		return nil
	}
}

// WithLogger sets the structured logger. By default the logger is taken
// from the call's context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
