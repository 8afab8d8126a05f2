package sync

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/crmsync/pkg/errors"
	"github.com/agentstation/crmsync/pkg/fields"
	"github.com/agentstation/crmsync/pkg/logging"
	"github.com/agentstation/crmsync/pkg/pipedrive"
	"github.com/agentstation/crmsync/pkg/reconciler"
)

// Run syncs records in order. Each record yields an organization, a person
// in that organization and a lead for the person. The first error stops the
// run; the returned Result then holds the records completed before it.
func Run(ctx context.Context, r reconciler.Reconciler, records []Record, opts ...Option) (*Result, error) {
	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.RunID == "" {
		options.RunID = uuid.NewString()
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}
	ctx = logging.WithRunID(ctx, options.RunID)
	logger := logging.FromContext(ctx)

	result := &Result{
		RunID:     options.RunID,
		StartedAt: utc.Now(),
		Total:     len(records),
		Records:   make([]RecordResult, 0, len(records)),
	}
	defer func() { result.FinishedAt = utc.Now() }()

	logger.Info().Int("records", len(records)).Msg("Starting sync")

	for i, record := range records {
		result.Warnings = append(result.Warnings, unknownLabels(logger, record.Person)...)

		synced, err := syncRecord(ctx, r, record, options.Comment)
		if err != nil {
			logger.Error().
				Err(err).
				Int("record", i).
				Str("organization", record.Organization.Name()).
				Msg("Sync aborted")
			return result, err
		}
		result.Records = append(result.Records, *synced)
	}

	logger.Info().
		Int("synced", len(result.Records)).
		Int("warnings", len(result.Warnings)).
		Msg("Sync completed")
	return result, nil
}

func syncRecord(ctx context.Context, r reconciler.Reconciler, record Record, defaultComment string) (*RecordResult, error) {
	org, err := r.Organization(ctx, record.Organization)
	if err != nil {
		return nil, err
	}
	orgID, ok := org.ID()
	if !ok {
		return nil, missingID("organization", record.Organization.Name())
	}

	person, err := r.Person(ctx, record.Person, orgID)
	if err != nil {
		return nil, err
	}
	personID, ok := person.ID()
	if !ok {
		return nil, missingID("person", record.Person.Name)
	}

	comment := record.Person.Comment
	if comment == "" {
		comment = defaultComment
	}
	lead, err := r.Lead(ctx, reconciler.NewLead(record.Person, personID, orgID, comment))
	if err != nil {
		return nil, err
	}

	return &RecordResult{
		OrganizationName: record.Organization.Name(),
		PersonName:       record.Person.Name,
		OrganizationID:   orgID,
		PersonID:         personID,
		LeadID:           leadID(lead),
		Organization:     org,
		Person:           person,
		Lead:             lead,
	}, nil
}

func missingID(kind, name string) error {
	return &errors.ResourceError{
		Operation: "create",
		Resource:  kind,
		Message:   "no id returned for: " + name,
		Err:       errors.ErrMissingID,
	}
}

func leadID(lead pipedrive.Response) string {
	id, ok := lead.Data()["id"]
	if !ok || id == nil {
		return ""
	}
	return fmt.Sprint(id)
}

// unknownLabels logs and returns a warning for each enum label with no code.
func unknownLabels(logger *zerolog.Logger, person reconciler.Person) []string {
	var warnings []string
	for _, field := range []struct{ name, label string }{
		{"contact_type", person.ContactType},
		{"housing_type", person.HousingType},
		{"deal_type", person.DealType},
	} {
		if fields.HasLabel(field.name, field.label) {
			continue
		}
		logger.Warn().
			Str("field", field.name).
			Str("label", field.label).
			Str("person", person.Name).
			Msg("Unknown label, sending no code")
		warnings = append(warnings, fmt.Sprintf("%s: unknown %s %q", person.Name, field.name, field.label))
	}
	return warnings
}
