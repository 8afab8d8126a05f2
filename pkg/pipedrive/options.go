package pipedrive

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/pkg/constants"
	"github.com/agentstation/crmsync/pkg/errors"
	"github.com/agentstation/crmsync/pkg/logging"
)

type options struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	events     logging.Recorder
	logger     *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		timeout: constants.DefaultHTTPTimeout,
		events:  logging.NopRecorder,
	}
}

// Option configures a Client.
type Option func(*options) error

// WithBaseURL overrides the API root, e.g. to point at a test server.
// The URL must not include the version segment.
func WithBaseURL(baseURL string) Option {
	return func(o *options) error {
		if baseURL == "" {
			return &errors.ValidationError{Field: "base_url", Message: "cannot be empty"}
		}
		o.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

// WithTimeout bounds every HTTP exchange. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout < 0 {
			return &errors.ValidationError{Field: "timeout", Value: timeout, Message: "must be non-negative"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithHTTPClient uses hc for all exchanges. WithTimeout is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithEventLog records failed calls to events.
func WithEventLog(events logging.Recorder) Option {
	return func(o *options) error {
		if events == nil {
			events = logging.NopRecorder
		}
		o.events = events
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
