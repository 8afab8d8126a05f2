// Package app provides the application context and dependency management
// for the crmsync CLI. It centralizes configuration, logging, the event log
// and the CRM client, and owns their lifecycle.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/internal/config"
	"github.com/agentstation/crmsync/pkg/errors"
	"github.com/agentstation/crmsync/pkg/logging"
	"github.com/agentstation/crmsync/pkg/pipedrive"
	"github.com/agentstation/crmsync/pkg/reconciler"
)

// App represents the crmsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily created on first use.
	mu     sync.Mutex
	events *logging.EventLog
	client *pipedrive.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// EventLog returns the event log, opening the file on first use.
func (a *App) EventLog() (*logging.EventLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.eventLogLocked()
}

func (a *App) eventLogLocked() (*logging.EventLog, error) {
	if a.events != nil {
		return a.events, nil
	}
	events, err := logging.OpenEventLog(a.config.EventLog)
	if err != nil {
		return nil, err
	}
	a.events = events
	return events, nil
}

// Client returns the CRM client, creating it on first use from the
// configured domain and API token.
func (a *App) Client() (*pipedrive.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	apiKey, err := config.GetAPIKey()
	if err != nil {
		return nil, err
	}

	opts := []pipedrive.Option{
		pipedrive.WithTimeout(a.config.HTTPTimeout),
		pipedrive.WithLogger(a.logger),
	}

	var domain string
	if a.config.BaseURL != "" {
		opts = append(opts, pipedrive.WithBaseURL(a.config.BaseURL))
	} else if domain, err = config.GetDomain(); err != nil {
		return nil, err
	}

	events, err := a.eventLogLocked()
	if err != nil {
		return nil, err
	}
	opts = append(opts, pipedrive.WithEventLog(events))

	client, err := pipedrive.New(domain, apiKey, opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = client
	return client, nil
}

// Reconciler returns a reconciler bound to the CRM client and event log.
func (a *App) Reconciler() (reconciler.Reconciler, error) {
	client, err := a.Client()
	if err != nil {
		return nil, err
	}
	events, err := a.EventLog()
	if err != nil {
		return nil, err
	}
	return reconciler.New(client,
		reconciler.WithEventLog(events),
		reconciler.WithLogger(a.logger),
	)
}

// Shutdown releases the event log.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.events == nil {
		return nil
	}
	err := a.events.Close()
	a.events = nil
	return err
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEventLog sets a custom event log (useful for testing).
func WithEventLog(events *logging.EventLog) Option {
	return func(a *App) error {
		a.events = events
		return nil
	}
}
