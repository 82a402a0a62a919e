// Package cli implements the portctl command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	clientID     string
	clientSecret string
	apiURL       string
	orgName      string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "portctl",
	Short: "Move catalog data into, out of, and between organizations",
	Long: `portctl moves configuration and data (blueprints, entities, scorecards,
actions, teams, automations, pages, integrations) into, out of, and
between organizations via the catalog platform's REST API.

Credentials can be provided via:
  1. Flags (--client-id, --client-secret) - highest priority
  2. Environment variables (PORT_CLIENT_ID, PORT_CLIENT_SECRET)
  3. Configuration file (~/.port/config.yaml)

Quick start:
  portctl config --init                       Scaffold a config file
  portctl export -o backup.tar.gz             Export everything
  portctl import -i backup.tar.gz             Import an archive
  portctl migrate --source prod --target dev  Copy between organizations`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.port/config.yaml)")
	pf.StringVar(&clientID, "client-id", "", "API client ID (overrides config/env)")
	pf.StringVar(&clientSecret, "client-secret", "", "API client secret (overrides config/env)")
	pf.StringVar(&apiURL, "api-url", "", "API base URL (overrides config/env)")
	pf.StringVar(&orgName, "org", "", "organization name from the config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newAPICmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initLogging routes diagnostics to stderr; debug level only with
// --verbose.
func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
