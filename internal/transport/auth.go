package transport

import (
	"net/http"

	"github.com/agentstation/crmsync/pkg/constants"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {}

// HeaderAuth sends a static API key in a custom header.
type HeaderAuth struct {
	Header string
	APIKey string
}

// NewAPITokenAuth returns header authentication using the CRM's API token header.
func NewAPITokenAuth(apiKey string) *HeaderAuth {
	return &HeaderAuth{Header: constants.APITokenHeader, APIKey: apiKey}
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	if a.APIKey == "" {
		return
	}
	req.Header.Set(a.Header, a.APIKey)
}
