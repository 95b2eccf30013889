package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/relgraph/internal/config"
	"github.com/syssam/relgraph/internal/migrate"
)

var migrateSchemaName string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `migrate applies every *.sql file under the configured migration
directory, in filename order. With --create-drop (or migration.create-drop
in the config file), it first drops and recreates the named schema.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateSchemaName, "schema", "public",
		"Schema name to drop/recreate when create-drop is set")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	runner, err := migrate.Open(ctx, cfg.Database.DSN, cfg.Migration.Dir)
	if err != nil {
		return fmt.Errorf("failed to open migration client: %w", err)
	}
	defer runner.Close()

	if cfg.Migration.CreateDrop {
		cmd.Printf("dropping and recreating schema %q\n", migrateSchemaName)
		if err := runner.CreateDrop(ctx, migrateSchemaName); err != nil {
			return fmt.Errorf("create-drop failed: %w", err)
		}
	}

	if err := runner.Apply(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	cmd.Println("migrations applied")
	return nil
}
