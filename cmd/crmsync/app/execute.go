package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/crmsync/pkg/errors"
)

// Execute runs the crmsync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "crmsync",
		Short:   "Push organizations, persons and leads into Pipedrive",
		Version: a.version,
		Long: `crmsync creates organizations, contact persons and leads in a Pipedrive
company account without creating duplicates. Every entity is searched for
first and only created when no match exists.

Credentials are read from PIPEDRIVE_DOMAIN and PIPEDRIVE_API_KEY, either from
the environment, a .env file, or ~/.crmsync.yaml. Integration events are
appended to the event log (CRMSYNC_EVENT_LOG, default crmsync.log).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspection Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.crmsync.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml")
	flags.StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("crmsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit --config is only known after flag parsing.
	if cmd.Flags().Changed("config") {
		viper.Set("config", mustGetString(cmd, "config"))
		config, err := LoadConfig()
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewSyncCommand())
	rootCmd.AddCommand(a.NewOrganizationsCommand())
	rootCmd.AddCommand(a.NewPersonsCommand())
	rootCmd.AddCommand(a.NewCodesCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		if h := hint(err); h != "" {
			_, _ = os.Stderr.WriteString("Hint: " + h + "\n")
		}
		os.Exit(1)
	}
}

// hint suggests a next step for CRM failures the user can act on.
func hint(err error) string {
	switch {
	case errors.IsTransport(err):
		return "check the network connection and PIPEDRIVE_DOMAIN or PIPEDRIVE_BASE_URL"
	case errors.IsRateLimited(err):
		return "the Pipedrive rate limit was reached; wait a moment and run the command again"
	case errors.IsServiceUnavailable(err):
		return "Pipedrive is unavailable; try again later"
	case errors.IsNotFound(err):
		return "the API endpoint was not found; check PIPEDRIVE_DOMAIN or PIPEDRIVE_BASE_URL"
	case errors.IsUnauthorized(err):
		return "the API token was rejected; check PIPEDRIVE_API_KEY"
	}
	return ""
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
