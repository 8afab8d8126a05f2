package app

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/pkg/logging"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the CLI logger. The level is chosen in this order:
// --log-level, then -q or -v (quiet wins when both are set), then
// LOG_LEVEL, then info.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLogger(logging.Config{
		Level:   level,
		Format:  config.LogFormat,
		Output:  config.LogOutput,
		NoColor: config.NoColor,
	})
}

func determineLogLevel(config *Config) string {
	switch {
	case config.LogLevel != "":
		level := validateLogLevel(config.LogLevel)
		if level != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
		}
		return level
	case config.Quiet:
		if config.Verbose {
			fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		}
		return "warn"
	case config.Verbose:
		return "debug"
	case config.EnvLogLevel != "":
		return validateLogLevel(config.EnvLogLevel)
	}
	return "info"
}

// validateLogLevel returns level if it is known, otherwise "info".
func validateLogLevel(level string) string {
	if slices.Contains(logLevels, level) {
		return level
	}
	return "info"
}
