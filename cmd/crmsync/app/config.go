package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/crmsync/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
// Credentials are not kept here; they are read when the CRM client is built.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string // --log-level flag

	// Config file
	ConfigFile string

	// CRM configuration
	BaseURL     string        // Overrides https://{domain}.pipedrive.com/api
	EventLog    string        // Path of the append-only event log
	HTTPTimeout time.Duration // Per-request bound (0 means none)
	SyncTimeout time.Duration // Whole-run bound (0 means none)
	LeadComment string        // Comment for leads whose record has none

	// Logging configuration
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"base_url":     "PIPEDRIVE_BASE_URL",
	"event_log":    "CRMSYNC_EVENT_LOG",
	"http_timeout": "CRMSYNC_HTTP_TIMEOUT",
	"sync_timeout": "CRMSYNC_SYNC_TIMEOUT",
	"lead_comment": "CRMSYNC_LEAD_COMMENT",
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.crmsync.yaml or ./.crmsync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	viper.SetDefault("event_log", constants.DefaultEventLogPath)
	viper.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	viper.SetDefault("sync_timeout", constants.DefaultSyncTimeout)
	viper.SetDefault("lead_comment", constants.DefaultLeadComment)

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".crmsync")
		// A missing default config file is fine.
		_ = viper.ReadInConfig()
	}

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		BaseURL:     viper.GetString("base_url"),
		EventLog:    viper.GetString("event_log"),
		HTTPTimeout: viper.GetDuration("http_timeout"),
		SyncTimeout: viper.GetDuration("sync_timeout"),
		LeadComment: viper.GetString("lead_comment"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("CRMSYNC_HTTP_TIMEOUT must be non-negative, got %s", c.HTTPTimeout)
	}
	if c.SyncTimeout < 0 {
		return fmt.Errorf("CRMSYNC_SYNC_TIMEOUT must be non-negative, got %s", c.SyncTimeout)
	}
	if c.EventLog == "" {
		c.EventLog = constants.DefaultEventLogPath
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never
// overrides variables that are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
