package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/pkg/constants"
)

// Config describes where structured logs go and how they look.
type Config struct {
	Level     string // trace, debug, info, warn, error or disabled
	Format    string // json, console or auto (console on a terminal)
	Output    string // stderr, stdout, discard, or a file path
	NoColor   bool
	AddCaller bool // file:line on every entry; implied at debug and below
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and NO_COLOR.
// DEBUG turns on debug logging when LOG_LEVEL is unset.
func ConfigFromEnv() Config {
	cfg := Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Output:  os.Getenv("LOG_OUTPUT"),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
	if cfg.Level == "" && os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	return cfg
}

// NewLogger builds a logger from cfg. It also sets zerolog's global level,
// which bounds every logger in the process.
func NewLogger(cfg Config) zerolog.Logger {
	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(cfg.writer()).Level(level).With().Timestamp().Logger()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ParseLevel maps a level name to a zerolog level. Unknown names are info.
func ParseLevel(name string) zerolog.Level {
	switch name = strings.ToLower(strings.TrimSpace(name)); name {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func (cfg Config) writer() io.Writer {
	out, terminal := cfg.output()

	switch strings.ToLower(cfg.Format) {
	case "json":
		return out
	case "console", "pretty":
	default:
		if !terminal {
			return out
		}
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    cfg.NoColor || !terminal,
	}
}

// output resolves cfg.Output and reports whether it is a terminal.
// An unwritable file path falls back to stderr.
func (cfg Config) output() (io.Writer, bool) {
	var f *os.File
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		f = os.Stderr
	case "stdout":
		f = os.Stdout
	case "discard", "none":
		return io.Discard, false
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			f = os.Stderr
			break
		}
		return file, false
	}
	return f, isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
