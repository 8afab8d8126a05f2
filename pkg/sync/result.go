package sync

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/crmsync/pkg/pipedrive"
)

// Result represents the outcome of a sync run. On failure it holds the
// records completed before the error.
type Result struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`

	Total    int            `json:"total" yaml:"total"`                           // Records submitted
	Records  []RecordResult `json:"records" yaml:"records"`                       // Records fully synced, in input order
	Warnings []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"` // Labels that mapped to no code
}

// RecordResult holds the CRM responses for one record.
type RecordResult struct {
	OrganizationName string `json:"organization_name" yaml:"organization_name"`
	PersonName       string `json:"person_name" yaml:"person_name"`
	OrganizationID   int64  `json:"organization_id" yaml:"organization_id"`
	PersonID         int64  `json:"person_id" yaml:"person_id"`
	LeadID           string `json:"lead_id" yaml:"lead_id"` // Lead ids are UUIDs

	Organization pipedrive.Response `json:"organization" yaml:"organization"`
	Person       pipedrive.Response `json:"person" yaml:"person"`
	Lead         pipedrive.Response `json:"lead" yaml:"lead"`
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Complete reports whether every record was synced.
func (r *Result) Complete() bool {
	return len(r.Records) == r.Total
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	summary := fmt.Sprintf("%d of %d records synced in %s", len(r.Records), r.Total, r.Duration().Round(time.Millisecond))
	if n := len(r.Warnings); n > 0 {
		summary += fmt.Sprintf(" (%d warnings)", n)
	}
	return summary
}
