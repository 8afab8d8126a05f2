// Package reconciler creates CRM entities without duplicating them. Each
// kind is found by name (scoped to its parents) and only created when the
// search comes back empty.
package reconciler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/pkg/constants"
	"github.com/agentstation/crmsync/pkg/fields"
	"github.com/agentstation/crmsync/pkg/logging"
	"github.com/agentstation/crmsync/pkg/pipedrive"
)

// Caller performs one CRM API call. *pipedrive.Client implements it.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, payload map[string]any, version int) (pipedrive.Response, error)
}

// Reconciler finds or creates each entity kind.
type Reconciler interface {
	// Organization returns the organization named org.Name(), creating it
	// from org when none exists.
	Organization(ctx context.Context, org Organization) (pipedrive.Response, error)

	// Person returns the person with person.Name in the given organization,
	// creating it when none exists.
	Person(ctx context.Context, person Person, orgID int64) (pipedrive.Response, error)

	// Lead returns the lead titled lead.Title() for the lead's person and
	// organization, creating it when none exists.
	Lead(ctx context.Context, lead Lead) (pipedrive.Response, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	client Caller
	events logging.Recorder
	now    func() time.Time
	logger *zerolog.Logger
}

// New creates a Reconciler that talks to the CRM through client.
func New(client Caller, opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		client: client,
		events: options.events,
		now:    options.now,
		logger: options.logger,
	}, nil
}

// entity describes one find-or-create step.
type entity struct {
	kind    string // endpoint, e.g. "organizations"
	label   string // event name, e.g. "Organization"
	name    string // search term
	scope   url.Values
	version int
	payload func() map[string]any
}

// Organization implements Reconciler.
func (r *reconciler) Organization(ctx context.Context, org Organization) (pipedrive.Response, error) {
	return r.findOrCreate(ctx, entity{
		kind:    "organizations",
		label:   "Organization",
		name:    org.Name(),
		version: constants.DefaultAPIVersion,
		payload: func() map[string]any { return org },
	})
}

// Person implements Reconciler.
func (r *reconciler) Person(ctx context.Context, person Person, orgID int64) (pipedrive.Response, error) {
	return r.findOrCreate(ctx, entity{
		kind:    "persons",
		label:   "Person",
		name:    person.Name,
		scope:   url.Values{"organization_id": {strconv.FormatInt(orgID, 10)}},
		version: constants.DefaultAPIVersion,
		payload: func() map[string]any {
			return map[string]any{
				"name":   person.Name,
				"org_id": orgID,
				"emails": []map[string]any{{"value": person.Email, "primary": true}},
				"phones": []map[string]any{{"value": person.Phone, "primary": true}},
				"custom_fields": map[string]any{
					string(fields.KeyContactType): fields.ContactTypeID(person.ContactType),
				},
			}
		},
	})
}

// Lead implements Reconciler.
func (r *reconciler) Lead(ctx context.Context, lead Lead) (pipedrive.Response, error) {
	title := lead.Title()
	return r.findOrCreate(ctx, entity{
		kind:  "leads",
		label: "Lead",
		name:  title,
		scope: url.Values{
			"person_id":       {strconv.FormatInt(lead.PersonID, 10)},
			"organization_id": {strconv.FormatInt(lead.OrganizationID, 10)},
		},
		version: constants.LeadsAPIVersion,
		payload: func() map[string]any {
			closeDate := r.now().Add(constants.LeadCloseWindow).Format(constants.DateFormat)
			return map[string]any{
				"title":                         title,
				"person_id":                     lead.PersonID,
				"organization_id":               lead.OrganizationID,
				"expected_close_date":           closeDate,
				string(fields.KeyHousingType):  fields.HousingTypeID(lead.HousingType),
				string(fields.KeyPropertySize): lead.PropertySize,
				string(fields.KeyComment):      lead.Comment,
				string(fields.KeyDealType):     fields.DealTypeID(lead.DealType),
			}
		},
	})
}

// findOrCreate searches for e and returns the first match, or creates it.
// Client errors are returned as is.
func (r *reconciler) findOrCreate(ctx context.Context, e entity) (pipedrive.Response, error) {
	logger := r.loggerFor(ctx).With().
		Str("entity", e.kind).
		Str("name", e.name).
		Logger()

	query := url.Values{"term": {e.name}}
	for key, values := range e.scope {
		query[key] = values
	}

	// Search always uses the default API version, even for leads.
	found, err := r.client.Call(ctx, http.MethodGet, e.kind+"/search?"+query.Encode(), nil, constants.DefaultAPIVersion)
	if err != nil {
		return nil, err
	}

	if items := found.Items(); len(items) > 0 {
		existing := pipedrive.Response{"data": items[0]}
		// Lead ids are UUID strings; the others are numbers.
		id := fmt.Sprint(items[0]["id"])
		r.events.Printf("%s already exists: %s (ID: %s)", e.label, e.name, id)
		logger.Debug().Str("id", id).Int("matches", len(items)).Msg("Found existing entity")
		return existing, nil
	}

	r.events.Printf("Creating new %s: %s", strings.ToLower(e.label), e.name)
	logger.Info().Msg("Creating entity")

	return r.client.Call(ctx, http.MethodPost, e.kind, e.payload(), e.version)
}

func (r *reconciler) loggerFor(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}
