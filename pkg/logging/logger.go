// Package logging provides structured logging for crmsync using zerolog,
// plus the append-only event log that records every integration event
// in a human-readable file.
//
// Structured logs go to stderr and are meant for operators:
//
//	logger := logging.NewLogger(logging.ConfigFromEnv())
//	ctx := logging.WithLogger(context.Background(), &logger)
//	logging.FromContext(ctx).Info().Str("organization", "Acme AS").Msg("Reconciling")
//
// The event log is the integration's audit trail:
//
//	events, err := logging.OpenEventLog("crmsync.log")
//	events.Printf("Creating new organization: %s", name)
package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	SetDefault(NewLogger(ConfigFromEnv()))
}

// Default returns the process-wide logger used when a context carries none.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
	log.Logger = logger
}
