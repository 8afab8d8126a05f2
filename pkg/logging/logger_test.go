package logging_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/crmsync/pkg/logging"
)

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	logging.SetDefault(zerolog.Nop())
	assert.Equal(t, zerolog.Disabled, logging.Default().GetLevel())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)

	logging.FromContext(context.Background()).Warn().Str("field", "housing_type").Msg("Unknown label")

	tl.AssertContains(t, "Unknown label")
	entries := tl.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "housing_type", entries[0]["field"])
}

func TestTestLoggerEntries(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Trace().Msg("first")
	tl.Logger.Error().Int64("id", 7).Msg("second")

	entries := tl.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["message"])
	assert.Equal(t, float64(7), entries[1]["id"])
}

func TestNewNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
