// Package errors defines the error types returned by crmsync. Each type
// wraps its cause, so errors.Is and errors.As see through them, and each
// message can be shown to a user as-is.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New is errors.New, re-exported so callers need a single errors import.
var New = errors.New

// Sentinels matched by the error types below.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAPIKeyRequired     = errors.New("API key required")
	ErrTransport          = errors.New("transport failure")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrRateLimited        = errors.New("rate limited")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrMissingID means the CRM accepted a create but returned no id.
	ErrMissingID = errors.New("missing id")
)

// TransportError means no usable HTTP response was obtained: the request
// could not be sent, or the response body could not be read.
type TransportError struct {
	Method   string
	Endpoint string
	Message  string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Endpoint == "" {
		return "transport error: " + e.Message
	}
	return fmt.Sprintf("transport error during %s %s: %s", e.Method, e.Endpoint, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// NewTransportError describes a failed exchange for method and endpoint.
func NewTransportError(method, endpoint string, err error) *TransportError {
	return &TransportError{Method: method, Endpoint: endpoint, Message: message(err), Err: err}
}

// APIError is a response the CRM sent back as a failure: an HTTP status of
// 400 or above, or a body whose success flag is falsy.
type APIError struct {
	Service    string
	StatusCode int
	Message    string // The body's error field, or a status-derived text
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches ErrUnauthorized for 401 and 403, ErrRateLimited for 429,
// ErrNotFound for 404 and ErrServiceUnavailable for any 5xx status.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return target == ErrUnauthorized
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return target == ErrServiceUnavailable
	}
	return false
}

// NewAPIError returns an APIError for service.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

// ValidationError reports a bad argument or input field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConfigError reports missing or unusable configuration.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError reports input that could not be decoded.
type ParseError struct {
	Format  string // json, yaml or records
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError returns a ParseError for file.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError reports a failed filesystem operation.
type IOError struct {
	Operation string // read, open, create
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError returns an IOError for operation on path.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Message: message(err), Err: err}
}

// ResourceError reports a failed operation on a CRM entity or on one of
// the application's own resources.
type ResourceError struct {
	Operation string // create, load
	Resource  string // organization, person, lead, client, config
	ID        string
	Message   string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
	}
	return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewResourceError returns a ResourceError whose message is err's.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: message(err), Err: err}
}

// IsNotFound reports whether err is a 404 from the CRM.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool { return errors.Is(err, ErrTransport) }

// IsAPI reports whether err is an APIError.
func IsAPI(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsRateLimited reports whether err is a 429 from the CRM.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsUnauthorized reports whether err is a 401 or 403 from the CRM.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsServiceUnavailable reports whether err is a 5xx from the CRM.
func IsServiceUnavailable(err error) bool { return errors.Is(err, ErrServiceUnavailable) }

// WrapIO wraps err as an IOError. It returns nil for a nil err.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps err as a ResourceError. It returns nil for a nil err.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps err as a ParseError. It returns nil for a nil err.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

func message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
