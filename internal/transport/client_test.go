package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-api-token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"echo":` + string(body) + `}`))
	}))
	defer server.Close()

	client := New(NewAPITokenAuth("key"), 0)
	status, body, err := client.Exchange(context.Background(), http.MethodPost, server.URL, strings.NewReader(`"hi"`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"echo":"hi"}`, string(body))
}

func TestExchangeFollowsRedirects(t *testing.T) {
	var hits int
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/old" {
			http.Redirect(w, r, server.URL+"/new", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(&NoAuth{}, 0)
	status, _, err := client.Exchange(context.Background(), http.MethodGet, server.URL+"/old", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, hits)
}

func TestExchangeRedirectLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	defer server.Close()

	client := New(&NoAuth{}, 0)
	_, _, err := client.Exchange(context.Background(), http.MethodGet, server.URL+"/loop", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 10 redirects")
}

func TestExchangeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := New(&NoAuth{}, 50*time.Millisecond)
	_, _, err := client.Exchange(context.Background(), http.MethodGet, server.URL, nil)
	require.Error(t, err)
}

func TestExchangeConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(&NoAuth{}, 0)
	_, _, err := client.Exchange(context.Background(), http.MethodGet, url, nil)
	require.Error(t, err)
}
