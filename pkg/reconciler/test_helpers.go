package reconciler

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/agentstation/crmsync/pkg/pipedrive"
)

// Call is one request seen by FakeCRM.
type Call struct {
	Method   string
	Endpoint string
	Payload  map[string]any
	Version  int
}

// FakeCRM is an in-memory Caller for tests. Searches match on name (title
// for leads) plus the parent ids in the query; creates assign sequential ids.
type FakeCRM struct {
	// FailOn, when set, may return an error for a call before it is served.
	FailOn func(Call) error

	mu      sync.Mutex
	nextID  int64
	records map[string][]map[string]any
	calls   []Call
}

// NewFakeCRM creates an empty fake CRM.
func NewFakeCRM() *FakeCRM {
	return &FakeCRM{records: make(map[string][]map[string]any)}
}

// Calls returns the calls served so far, in order.
func (f *FakeCRM) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Records returns the entities created for kind.
func (f *FakeCRM) Records(kind string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.records[kind]...)
}

// Call implements Caller.
func (f *FakeCRM) Call(_ context.Context, method, endpoint string, payload map[string]any, version int) (pipedrive.Response, error) {
	call := Call{Method: method, Endpoint: endpoint, Payload: payload, Version: version}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)

	if f.FailOn != nil {
		if err := f.FailOn(call); err != nil {
			return nil, err
		}
	}

	if kind, rawQuery, ok := strings.Cut(endpoint, "/search?"); ok && method == http.MethodGet {
		return f.search(kind, rawQuery)
	}
	if method == http.MethodPost {
		f.nextID++
		record := maps.Clone(payload)
		if record == nil {
			record = map[string]any{}
		}
		record["id"] = f.nextID
		f.records[endpoint] = append(f.records[endpoint], record)
		return pipedrive.Response{"success": true, "data": record}, nil
	}
	return nil, fmt.Errorf("fake crm: unsupported call %s %s", method, endpoint)
}

func (f *FakeCRM) search(kind, rawQuery string) (pipedrive.Response, error) {
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}

	searchKey := "name"
	if kind == "leads" {
		searchKey = "title"
	}

	items := []any{}
	for _, record := range f.records[kind] {
		if fmt.Sprint(record[searchKey]) != query.Get("term") {
			continue
		}
		if !matchesScope(kind, record, query) {
			continue
		}
		items = append(items, map[string]any{"result_score": 1, "item": maps.Clone(record)})
	}
	return pipedrive.Response{"success": true, "data": map[string]any{"items": items}}, nil
}

func matchesScope(kind string, record map[string]any, query url.Values) bool {
	for key := range query {
		if key == "term" {
			continue
		}
		field := key
		if kind == "persons" && key == "organization_id" {
			field = "org_id"
		}
		if fmt.Sprint(record[field]) != query.Get(key) {
			return false
		}
	}
	return true
}
