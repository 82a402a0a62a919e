package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portctl/portctl/internal/update"
)

// Version information, set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
)

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("portctl %s (commit %s)\n", version, commit)
			if !check {
				return nil
			}

			result, err := update.NewChecker().Check(cmd.Context(), version)
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			if result.UpdateAvailable {
				fmt.Printf("A newer release is available: %s\n%s\n", result.LatestVersion, result.ReleaseURL)
			} else {
				fmt.Println("You are on the latest release.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
