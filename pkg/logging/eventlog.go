package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/pkg/constants"
	"github.com/agentstation/crmsync/pkg/errors"
)

// Recorder receives integration events destined for the event log.
type Recorder interface {
	Printf(format string, args ...any)
}

// NopRecorder discards every event.
var NopRecorder Recorder = nopRecorder{}

type nopRecorder struct{}

func (nopRecorder) Printf(string, ...any) {}

// EventLog appends one line per event, formatted as
// "[YYYY-MM-DD HH:MM:SS] message". Writes are best-effort: a failed
// write is reported through zerolog's error handler and never returned.
type EventLog struct {
	logger zerolog.Logger
	closer io.Closer
	now    func() time.Time
}

// EventLogOption configures an EventLog.
type EventLogOption func(*EventLog)

// WithEventClock overrides the clock used to stamp events.
func WithEventClock(now func() time.Time) EventLogOption {
	return func(l *EventLog) {
		if now != nil {
			l.now = now
		}
	}
}

// NewEventLog creates an event log that writes to w.
func NewEventLog(w io.Writer, opts ...EventLogOption) *EventLog {
	writer := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FormatTimestamp: func(i any) string {
			return fmt.Sprintf("[%v]", i)
		},
		FormatMessage: func(i any) string {
			return fmt.Sprintf("%v", i)
		},
	}

	l := &EventLog{
		logger: zerolog.New(zerolog.SyncWriter(writer)),
		now:    time.Now,
	}
	if c, ok := w.(io.Closer); ok {
		l.closer = c
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OpenEventLog opens (or creates) the event log file at path in append mode.
// Each event is emitted in a single write, so lines from several processes
// appending to the same file do not interleave.
func OpenEventLog(path string, opts ...EventLogOption) (*EventLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return NewEventLog(file, opts...), nil
}

// Printf appends a formatted event.
func (l *EventLog) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Log().
		Str(zerolog.TimestampFieldName, l.now().Format(constants.EventTimeFormat)).
		Msgf(format, args...)
}

// Close closes the underlying file, if any.
func (l *EventLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
