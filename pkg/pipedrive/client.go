// Package pipedrive is the single point of contact with the Pipedrive REST API.
// It builds versioned URLs, injects the API token, encodes and decodes JSON,
// and normalizes every failure into a TransportError or an APIError.
package pipedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/internal/transport"
	"github.com/agentstation/crmsync/pkg/constants"
	"github.com/agentstation/crmsync/pkg/errors"
	"github.com/agentstation/crmsync/pkg/logging"
)

// Service names the remote API in errors.
const Service = "pipedrive"

// Client calls the Pipedrive API for one company domain.
type Client struct {
	baseURL   string
	transport *transport.Client
	events    logging.Recorder
	logger    *zerolog.Logger
}

// New creates a client for https://{domain}.pipedrive.com/api authenticated
// with apiKey.
func New(domain, apiKey string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if apiKey == "" {
		return nil, &errors.ValidationError{Field: "api_key", Message: "cannot be empty"}
	}
	if o.baseURL == "" {
		if domain == "" {
			return nil, &errors.ValidationError{Field: "domain", Message: "cannot be empty"}
		}
		o.baseURL = fmt.Sprintf(constants.BaseURLFormat, domain)
	}

	auth := transport.NewAPITokenAuth(apiKey)
	var tc *transport.Client
	if o.httpClient != nil {
		tc = transport.NewWithHTTPClient(auth, o.httpClient)
	} else {
		tc = transport.New(auth, o.timeout)
	}

	return &Client{
		baseURL:   o.baseURL,
		transport: tc,
		events:    o.events,
		logger:    o.logger,
	}, nil
}

// BaseURL returns the API root without the version segment.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call sends method to {baseURL}/v{version}/{endpoint}. payload is sent as a
// JSON body when it is non-empty. A version of zero or less selects the
// default API version.
//
// On success the decoded body is returned unchanged, including its data
// envelope. A failed exchange yields a *errors.TransportError; a status of
// 400 or above, or a falsy "success" flag, yields a *errors.APIError.
func (c *Client) Call(ctx context.Context, method, endpoint string, payload map[string]any, version int) (Response, error) {
	if version <= 0 {
		version = constants.DefaultAPIVersion
	}
	url := fmt.Sprintf("%s/v%d/%s", c.baseURL, version, strings.TrimPrefix(endpoint, "/"))
	logger := c.loggerFor(ctx)

	var body io.Reader
	if len(payload) > 0 {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, c.fail(logger, errors.NewTransportError(method, url, fmt.Errorf("encoding request body: %w", err)))
		}
		body = bytes.NewReader(data)
	}

	logger.Debug().
		Str("method", method).
		Str("url", url).
		Bool("has_body", body != nil).
		Msg("Calling CRM API")

	status, data, err := c.transport.Exchange(ctx, method, url, body)
	if err != nil {
		return nil, c.fail(logger, errors.NewTransportError(method, url, err))
	}

	result := decode(data)
	if status >= http.StatusBadRequest || unsuccessful(result) {
		return nil, c.fail(logger, &errors.APIError{
			Service:    Service,
			StatusCode: status,
			Message:    errorMessage(result, status),
			Endpoint:   url,
		})
	}

	logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", status).
		Msg("CRM API call succeeded")

	return result, nil
}

// ListOrganizations returns the first page of organizations.
func (c *Client) ListOrganizations(ctx context.Context) (Response, error) {
	return c.Call(ctx, http.MethodGet, "organizations", nil, constants.DefaultAPIVersion)
}

// ListPersons returns the first page of persons.
func (c *Client) ListPersons(ctx context.Context) (Response, error) {
	return c.Call(ctx, http.MethodGet, "persons", nil, constants.DefaultAPIVersion)
}

// fail records err in the event log and structured log, then returns it.
func (c *Client) fail(logger *zerolog.Logger, err error) error {
	switch e := err.(type) {
	case *errors.TransportError:
		c.events.Printf("Transport Error: %s %s: %s", e.Method, e.Endpoint, e.Message)
	case *errors.APIError:
		c.events.Printf("API Error: %s", e.Message)
	}
	logger.Error().Err(err).Msg("CRM API call failed")
	return err
}

func (c *Client) loggerFor(ctx context.Context) *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

// decode parses a JSON object body. Anything else decodes to nil.
func decode(data []byte) Response {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil
	}
	obj, _ := decoded.(map[string]any)
	return obj
}

// unsuccessful reports whether the body carries a falsy "success" flag.
// A null flag counts as absent.
func unsuccessful(result Response) bool {
	v, ok := result["success"]
	if !ok || v == nil {
		return false
	}
	switch flag := v.(type) {
	case bool:
		return !flag
	case json.Number:
		f, err := flag.Float64()
		return err == nil && f == 0
	case string:
		return flag == "" || flag == "0"
	case []any:
		return len(flag) == 0
	case map[string]any:
		return len(flag) == 0
	}
	return false
}

func errorMessage(result Response, status int) string {
	switch msg := result["error"].(type) {
	case nil:
	case string:
		return msg
	default:
		if raw, err := json.Marshal(msg); err == nil {
			return string(raw)
		}
		return fmt.Sprint(msg)
	}
	return fmt.Sprintf("API returned status %d", status)
}
