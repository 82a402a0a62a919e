package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portctl/portctl/internal/transfer"
)

// newImportCmd creates the import command.
func newImportCmd() *cobra.Command {
	var input string
	var include string
	var skipEntities bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an archive into an organization",
		Long: `Import a previously exported archive. Each record is created first; a
conflict falls back to an update of the existing resource. A single bad
record never aborts the batch: item failures are reported as warnings and
the import still succeeds.

Examples:
  portctl import -i backup.tar.gz
  portctl import -i backup.json --dry-run        # Validate and count only
  portctl import -i backup.tar.gz --skip-entities
  portctl import -i backup.tar.gz --include blueprints,scorecards`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := transfer.ReadArchive(input)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("Validation passed (dry run - no changes applied): %d blueprint(s), %d entity(ies)\n",
					len(snap.Blueprints), len(snap.Entities))
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			report, err := transfer.Replay(cmd.Context(), client, snap, transfer.ReplayOptions{
				SkipEntities: skipEntities,
				IncludeKinds: parseList(include),
			})
			if err != nil {
				return err
			}

			printReplaySummary(report)
			printItemErrors(report.Errors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input archive path")
	cmd.Flags().StringVar(&include, "include", "", "comma-separated resource kinds to import (default all)")
	cmd.Flags().BoolVar(&skipEntities, "skip-entities", false, "skip importing entities")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the archive without applying changes")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// printReplaySummary prints the non-zero counters in stable order.
func printReplaySummary(report *transfer.ReplayReport) {
	keys := make([]string, 0, len(report.Counts))
	for k, n := range report.Counts {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		fmt.Println("Imported: nothing to do")
		return
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, report.Counts[k]))
	}
	fmt.Printf("Imported: %s\n", strings.Join(parts, ", "))
}
