// Package constants provides shared constants used throughout the crmsync codebase.
// This includes API versions, timeouts, file permissions, and other configuration
// values that should be consistent across the application.
package constants

import "time"

// Pipedrive API constants
const (
	// BaseURLFormat is the Pipedrive API root for a company domain.
	BaseURLFormat = "https://%s.pipedrive.com/api"

	// DefaultAPIVersion is the API generation used unless an endpoint requires another
	DefaultAPIVersion = 2

	// LeadsAPIVersion is the API generation that serves the leads create endpoint
	LeadsAPIVersion = 1

	// APITokenHeader carries the static API key on every request
	APITokenHeader = "x-api-token"

	// ContentTypeJSON is the content type for request and response bodies
	ContentTypeJSON = "application/json"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the timeout for requests to the CRM API.
	// Zero means no timeout.
	DefaultHTTPTimeout = 0 * time.Second

	// DefaultSyncTimeout is the deadline for a whole sync run. Zero means none.
	DefaultSyncTimeout = 0 * time.Second

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Limit constants
const (
	// MaxRedirects is the number of redirects followed before giving up
	MaxRedirects = 10

	// LeadCloseWindow is added to the creation time to get a lead's expected close date
	LeadCloseWindow = 7 * 24 * time.Hour
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Formatting constants
const (
	// EventTimeFormat is the timestamp layout of event log lines
	EventTimeFormat = "2006-01-02 15:04:05"

	// DateFormat is the layout of date-only fields sent to the CRM
	DateFormat = "2006-01-02"
)

// Default values for configuration
const (
	// DefaultEventLogPath is where integration events are appended
	DefaultEventLogPath = "crmsync.log"

	// DefaultLeadComment is the comment attached to leads when a record has none
	DefaultLeadComment = "Lorem ipsum dolor sit amet."
)
