// Package sync pushes batches of organization and person records into the
// CRM, creating the organization, the person and a lead for each record.
package sync

import (
	"time"

	"github.com/agentstation/crmsync/pkg/constants"
	"github.com/agentstation/crmsync/pkg/errors"
)

// Options controls a sync run.
type Options struct {
	Comment string        // Lead comment used when a record has none
	Timeout time.Duration // Deadline for the entire run (0 means none)
	RunID   string        // Identifies the run in logs (generated when empty)
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		Comment: constants.DefaultLeadComment,
		Timeout: constants.DefaultSyncTimeout,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	return nil
}

// WithComment sets the default lead comment.
func WithComment(comment string) Option {
	return func(opts *Options) {
		opts.Comment = comment
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithRunID sets the run id instead of generating one.
func WithRunID(runID string) Option {
	return func(opts *Options) {
		opts.RunID = runID
	}
}
