package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newAPICmd creates the api command group: direct pass-through CRUD calls
// for ad hoc inspection and scripting.
func newAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Direct API operations",
		Long: `Direct pass-through operations against the catalog API. Results are
printed as JSON to stdout. Request bodies are read from a JSON file, or
from stdin when the path is "-".

Examples:
  portctl api blueprints list
  portctl api blueprints get service
  portctl api blueprints create blueprint.json
  portctl api entities list service
  portctl api entities delete service checkout-svc`,
	}

	cmd.AddCommand(newAPIBlueprintsCmd())
	cmd.AddCommand(newAPIEntitiesCmd())
	return cmd
}

func newAPIBlueprintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprints",
		Short: "Blueprint CRUD operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all blueprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			blueprints, err := client.Blueprints(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(blueprints)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <identifier>",
		Short: "Get a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			blueprint, err := client.Blueprint(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(blueprint)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <file>",
		Short: "Create a blueprint from a JSON file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(args[0])
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			created, err := client.CreateBlueprint(cmd.Context(), record)
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <identifier> <file>",
		Short: "Update a blueprint from a JSON file (use - for stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(args[1])
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			updated, err := client.UpdateBlueprint(cmd.Context(), args[0], record)
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <identifier>",
		Short: "Delete a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.DeleteBlueprint(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted blueprint %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func newAPIEntitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Entity CRUD operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <blueprint>",
		Short: "List the entities of a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			entities, err := client.Entities(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(entities)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <blueprint> <identifier>",
		Short: "Get an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			entity, err := client.Entity(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(entity)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <blueprint> <file>",
		Short: "Create an entity from a JSON file (use - for stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(args[1])
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			created, err := client.CreateEntity(cmd.Context(), args[0], record)
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <blueprint> <identifier> <file>",
		Short: "Update an entity from a JSON file (use - for stdin)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(args[2])
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			updated, err := client.UpdateEntity(cmd.Context(), args[0], args[1], record)
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <blueprint> <identifier>",
		Short: "Delete an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.DeleteEntity(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Deleted entity %s/%s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
