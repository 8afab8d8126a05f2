package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/crmsync/internal/cmd/output"
	"github.com/agentstation/crmsync/pkg/pipedrive"
	"github.com/agentstation/crmsync/pkg/sync"
)

// NewSyncCommand creates the sync command.
func (a *App) NewSyncCommand() *cobra.Command {
	var (
		comment string
		timeout time.Duration
		runID   string
	)

	cmd := &cobra.Command{
		Use:     "sync <records-file>",
		GroupID: "core",
		Short:   "Create organizations, persons and leads from a records file",
		Long: `Sync reads a JSON or YAML array of records, each holding an organization
and a person, and for every record finds or creates the organization, the
person within it, and a lead for the person.

Records are processed in order. The first failure stops the run; records
synced before it are still reported.`,
		Example: `  crmsync sync records.json
  crmsync sync records.yaml --comment "Fra nettskjema" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := sync.LoadRecords(args[0])
			if err != nil {
				return err
			}

			r, err := a.Reconciler()
			if err != nil {
				return err
			}

			opts := []sync.Option{
				sync.WithComment(a.config.LeadComment),
				sync.WithTimeout(a.config.SyncTimeout),
				sync.WithRunID(runID),
			}
			if cmd.Flags().Changed("comment") {
				opts = append(opts, sync.WithComment(comment))
			}
			if cmd.Flags().Changed("timeout") {
				opts = append(opts, sync.WithTimeout(timeout))
			}

			result, runErr := sync.Run(a.commandContext(cmd.Context()), r, records, opts...)
			if result != nil {
				if err := a.render(cmd, result, output.SyncResultToTableData(result)); err != nil {
					return err
				}
				a.logger.Info().Str("run_id", result.RunID).Msg(result.Summary())
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "lead comment for records without one")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "deadline for the whole run (0 means none)")
	cmd.Flags().StringVar(&runID, "run-id", "", "run id for logs (default: random UUID)")

	return cmd
}

// NewOrganizationsCommand creates the organizations command.
func (a *App) NewOrganizationsCommand() *cobra.Command {
	return a.newListCommand("organizations", []string{"orgs"}, "List organizations in the CRM",
		(*pipedrive.Client).ListOrganizations, "id", "name", "owner_id", "add_time")
}

// NewPersonsCommand creates the persons command.
func (a *App) NewPersonsCommand() *cobra.Command {
	return a.newListCommand("persons", []string{"people"}, "List persons in the CRM",
		(*pipedrive.Client).ListPersons, "id", "name", "org_id", "emails", "phones")
}

type listFunc func(*pipedrive.Client, context.Context) (pipedrive.Response, error)

func (a *App) newListCommand(use string, aliases []string, short string, list listFunc, columns ...string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: aliases,
		GroupID: "inspect",
		Short:   short,
		Long:    short + ". Only the first page returned by the API is shown.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			resp, err := list(client, a.commandContext(cmd.Context()))
			if err != nil {
				return err
			}
			entities := resp.List()
			return a.render(cmd, entities, output.EntitiesToTableData(entities, columns...))
		},
	}
}

// NewCodesCommand creates the codes command.
func (a *App) NewCodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "codes",
		GroupID: "inspect",
		Short:   "List the labels accepted for contact, housing and deal types",
		Long: `Codes lists every label that maps to a CRM option, with its option id.
Labels are matched case-insensitively. Any other label is sent as null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes := output.Codes()
			return a.render(cmd, codes, output.CodesToTableData(codes))
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "crmsync version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "built by: %s\n", a.builtBy)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// render writes data in the configured format. Tables use table instead
// of data.
func (a *App) render(cmd *cobra.Command, data any, table any) error {
	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	if format == output.FormatTable {
		data = table
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}
