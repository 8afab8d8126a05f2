package logging_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/crmsync/pkg/logging"
)

var eventLine = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] .+$`)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestEventLogFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	events := logging.NewEventLog(buf, logging.WithEventClock(fixedClock))

	events.Printf("Creating new organization: %s", "Acme AS")
	events.Printf("Person already exists: %s (ID: %d)", "Ola Nordmann", 7)

	assert.Equal(t,
		"[2025-03-14 09:26:53] Creating new organization: Acme AS\n"+
			"[2025-03-14 09:26:53] Person already exists: Ola Nordmann (ID: 7)\n",
		buf.String())
}

func TestEventLogIgnoresLogLevel(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	buf := &bytes.Buffer{}
	logging.NewEventLog(buf).Printf("still recorded")

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.Regexp(t, eventLine, line)
	assert.True(t, strings.HasSuffix(line, "] still recorded"))
}

func TestOpenEventLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "crmsync.log")

	first, err := logging.OpenEventLog(path, logging.WithEventClock(fixedClock))
	require.NoError(t, err)
	first.Printf("first")
	require.NoError(t, first.Close())

	second, err := logging.OpenEventLog(path, logging.WithEventClock(fixedClock))
	require.NoError(t, err)
	second.Printf("second")
	require.NoError(t, second.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Regexp(t, eventLine, line)
	}
	assert.True(t, strings.HasSuffix(lines[0], "first"))
	assert.True(t, strings.HasSuffix(lines[1], "second"))
}

func TestOpenEventLogError(t *testing.T) {
	dir := t.TempDir()
	_, err := logging.OpenEventLog(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEventLogWriteFailureIsSilent(t *testing.T) {
	originalHandler := zerolog.ErrorHandler
	var reported error
	zerolog.ErrorHandler = func(err error) { reported = err }
	t.Cleanup(func() { zerolog.ErrorHandler = originalHandler })

	events := logging.NewEventLog(failingWriter{})
	assert.NotPanics(t, func() { events.Printf("lost event") })
	assert.Error(t, reported)
}

func TestNilEventLog(t *testing.T) {
	var events *logging.EventLog
	assert.NotPanics(t, func() { events.Printf("nothing") })
	assert.NoError(t, events.Close())
	logging.NopRecorder.Printf("nothing")
}

func TestMemoryRecorder(t *testing.T) {
	rec := &logging.MemoryRecorder{}
	rec.Printf("a %d", 1)
	rec.Printf("b")
	assert.Equal(t, []string{"a 1", "b"}, rec.Events())
}
