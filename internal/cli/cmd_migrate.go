package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portctl/portctl/internal/transfer"
)

// newMigrateCmd creates the migrate command.
func newMigrateCmd() *cobra.Command {
	var sourceOrg string
	var targetOrg string
	var blueprints string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate data between two organizations",
		Long: `Migrate blueprints and entities from a source organization to a target
organization. Blueprint selections are expanded with their relation
dependencies so the target schema stays consistent. Resources that already
exist on the target are skipped, never overwritten. Automations, pages and
integrations are collected for visibility but not replayed.

Both organizations must be defined in the config file.

Examples:
  portctl migrate --source production --target staging
  portctl migrate --source production --target staging --blueprints service
  portctl migrate --source production --target staging --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := newOrgClient(sourceOrg)
			if err != nil {
				return fmt.Errorf("source organization: %w", err)
			}

			var target transfer.MigrateTargetAPI
			if !dryRun {
				targetClient, err := newOrgClient(targetOrg)
				if err != nil {
					return fmt.Errorf("target organization: %w", err)
				}
				target = targetClient
			}

			result, err := transfer.Migrate(cmd.Context(), source, target, transfer.MigrateOptions{
				BlueprintFilter: parseList(blueprints),
				DryRun:          dryRun,
			})
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			if dryRun {
				fmt.Printf("Migration validation passed (dry run): blueprints=%d, entities=%d\n",
					result.Blueprints, result.Entities)
				return nil
			}

			printMigrateSummary(result)
			printItemErrors(result.Applied.Errors)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceOrg, "source", "", "source organization name")
	cmd.Flags().StringVar(&targetOrg, "target", "", "target organization name")
	cmd.Flags().StringVarP(&blueprints, "blueprints", "b", "", "comma-separated blueprint identifiers to migrate")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "collect and count without touching the target")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func printMigrateSummary(result *transfer.MigrateResult) {
	counts := result.Applied.Counts
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	fmt.Printf("Migration complete: %s\n", strings.Join(parts, ", "))
}
