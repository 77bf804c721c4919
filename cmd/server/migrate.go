package main

import (
	"fmt"

	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down|reset|status|version]",
		Short: "Run database migrations",
		Long: `Apply, roll back or inspect the embedded database migrations.
Without an argument all pending migrations are applied.`,
		Args: cobra.MatchAll(
			cobra.MaximumNArgs(1),
			cobra.OnlyValidArgs,
		),
		ValidArgs: []string{
			postgres.MigrateUp,
			postgres.MigrateDown,
			postgres.MigrateReset,
			postgres.MigrateStatus,
			postgres.MigrateVersion,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, log, err := loadConfigAndLogger(*configFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if command == postgres.MigrateVersion {
				version, err := postgres.CurrentVersion(ctx, db)
				if err != nil {
					return err
				}
				cmd.Printf("current migration version: %d\n", version)
				return nil
			}

			if err := postgres.Migrate(ctx, db, command, log); err != nil {
				return fmt.Errorf("migrate %s: %w", command, err)
			}

			cmd.Printf("migrate %s completed\n", command)
			return nil
		},
	}
}
