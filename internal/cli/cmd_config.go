package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/portctl/portctl/internal/config"
)

// newConfigCmd creates the config command.
func newConfigCmd() *cobra.Command {
	var initFile bool
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage portctl configuration",
		Long: `Manage the portctl configuration file.

Examples:
  portctl config --init    Scaffold ~/.port/config.yaml with placeholders
  portctl config --show    Show the effective configuration (no secrets)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case initFile:
				return runConfigInit()
			case show:
				return runConfigShow()
			default:
				fmt.Println("Use --show to display configuration or --init to create a config file")
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "create a starter configuration file")
	cmd.Flags().BoolVar(&show, "show", false, "show the current configuration")
	return cmd
}

func runConfigInit() error {
	path := cfgFile
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Configuration file created at %s\n", path)
	fmt.Println("Edit the file and add your API credentials.")
	return nil
}

func runConfigShow() error {
	path := cfgFile
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	fmt.Printf("Config file: %s\n", path)
	fmt.Printf("Default org: %s\n", orDash(cfg.DefaultOrg))
	fmt.Printf("Organizations: %d\n", len(cfg.Organizations))

	names := make([]string, 0, len(cfg.Organizations))
	for name := range cfg.Organizations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  - %s (%s)\n", name, cfg.Organizations[name].APIURL)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
