// Package transport performs authenticated JSON HTTP exchanges.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agentstation/crmsync/pkg/constants"
)

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a new transport client with the specified authenticator.
// A zero timeout leaves requests unbounded; callers bound them through ctx.
func New(auth Authenticator, timeout time.Duration) *Client {
	return NewWithHTTPClient(auth, &http.Client{
		Timeout:       timeout,
		CheckRedirect: limitRedirects(constants.MaxRedirects),
	})
}

// NewWithHTTPClient wraps an existing http.Client.
func NewWithHTTPClient(auth Authenticator, hc *http.Client) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	if hc == nil {
		hc = &http.Client{CheckRedirect: limitRedirects(constants.MaxRedirects)}
	}
	return &Client{http: hc, auth: auth}
}

// Do performs an HTTP request with authentication and JSON headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)

	req.Header.Set("Accept", constants.ContentTypeJSON)
	req.Header.Set("Content-Type", constants.ContentTypeJSON)

	return c.http.Do(req)
}

// Exchange sends a request and returns the status code and the full body.
func (c *Client) Exchange(ctx context.Context, method, url string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

// limitRedirects stops following redirects after max hops.
func limitRedirects(max int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		return nil
	}
}
