package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/crmsync/pkg/constants"
)

// isolateConfig gives the test a clean viper, an empty home directory and
// no CRM credentials.
func isolateConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"PIPEDRIVE_DOMAIN", "PIPEDRIVE_API_KEY", "PIPEDRIVE_BASE_URL",
		"CRMSYNC_EVENT_LOG", "CRMSYNC_HTTP_TIMEOUT", "CRMSYNC_SYNC_TIMEOUT", "CRMSYNC_LEAD_COMMENT",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_OUTPUT", "discard")
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateConfig(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultEventLogPath, config.EventLog)
	assert.Equal(t, constants.DefaultLeadComment, config.LeadComment)
	assert.Zero(t, config.HTTPTimeout)
	assert.Zero(t, config.SyncTimeout)
	assert.Empty(t, config.BaseURL)
	assert.Equal(t, "auto", config.LogFormat)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolateConfig(t)
	t.Setenv("PIPEDRIVE_BASE_URL", "http://127.0.0.1:9999/api")
	t.Setenv("CRMSYNC_EVENT_LOG", "/tmp/events.log")
	t.Setenv("CRMSYNC_HTTP_TIMEOUT", "30s")
	t.Setenv("CRMSYNC_SYNC_TIMEOUT", "5m")
	t.Setenv("CRMSYNC_LEAD_COMMENT", "Fra nettskjema")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999/api", config.BaseURL)
	assert.Equal(t, "/tmp/events.log", config.EventLog)
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, config.SyncTimeout)
	assert.Equal(t, "Fra nettskjema", config.LeadComment)
	assert.Equal(t, "debug", config.EnvLogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	isolateConfig(t)

	path := filepath.Join(t.TempDir(), "crmsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lead_comment: Fra fil\nsync_timeout: 1m\n"), 0o600))
	viper.Set("config", path)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "Fra fil", config.LeadComment)
	assert.Equal(t, time.Minute, config.SyncTimeout)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfigMissingFile(t *testing.T) {
	isolateConfig(t)
	viper.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigNegativeTimeout(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"http timeout", "CRMSYNC_HTTP_TIMEOUT"},
		{"sync timeout", "CRMSYNC_SYNC_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			t.Setenv(tt.env, "-1s")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format, "empty flag keeps configured format")
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "json", "error")
	assert.False(t, config.Verbose)
	assert.True(t, config.Quiet)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "error", config.LogLevel)
}
