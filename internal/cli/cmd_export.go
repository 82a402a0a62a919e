package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portctl/portctl/internal/transfer"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var output string
	var format string
	var blueprints string
	var include string
	var skipEntities bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export organization data to an archive",
		Long: `Export blueprints, entities, scorecards, actions, teams, automations,
pages and integrations to a JSON document or a gzip tar archive.

Examples:
  portctl export -o backup.tar.gz                      # Everything, gzip tar
  portctl export -o backup.json --format json          # Everything, flat JSON
  portctl export -o svc.tar.gz --blueprints service    # Only the service blueprint
  portctl export -o schema.tar.gz --skip-entities      # Schema without entities
  portctl export -o ent.json --format json --include entities`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != transfer.FormatJSON && format != transfer.FormatTar {
				return fmt.Errorf("invalid format %q (want json or tar)", format)
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			snap, err := transfer.Collect(cmd.Context(), client, transfer.CollectOptions{
				BlueprintFilter: parseList(blueprints),
				SkipEntities:    skipEntities,
				IncludeKinds:    parseList(include),
			})
			if err != nil {
				return fmt.Errorf("collect: %w", err)
			}

			if err := transfer.WriteArchive(snap, output, format); err != nil {
				return err
			}

			fmt.Printf("Exported %d blueprint(s), %d entity(ies), %d scorecard(s), %d action(s), %d team(s), %d automation(s), %d page(s), %d integration(s) to %s\n",
				len(snap.Blueprints), len(snap.Entities), len(snap.Scorecards), len(snap.Actions),
				len(snap.Teams), len(snap.Automations), len(snap.Pages), len(snap.Integrations), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().StringVarP(&format, "format", "f", transfer.FormatTar, "output format: json or tar")
	cmd.Flags().StringVarP(&blueprints, "blueprints", "b", "", "comma-separated blueprint identifiers to export")
	cmd.Flags().StringVar(&include, "include", "", "comma-separated resource kinds to export (default all)")
	cmd.Flags().BoolVar(&skipEntities, "skip-entities", false, "skip exporting entities")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
