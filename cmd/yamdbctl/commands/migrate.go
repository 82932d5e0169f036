// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/migration"
)

// newMigrateCmd builds "migrate" and its subcommands.
func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Keep the database schema in sync with the binary.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back migrations
  version  - Show the applied version`,
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(migrator *migration.Migrator) error {
				if err := migrator.Up(); err != nil {
					return err
				}
				return printVersion(cmd, migrator)
			})
		},
	})

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Long: `Roll back applied migrations.

Examples:
  yamdbctl migrate down             # Roll back the last migration
  yamdbctl migrate down --steps 2   # Roll back two migrations`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(migrator *migration.Migrator) error {
				if err := migrator.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd, migrator)
			})
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	migrateCmd.AddCommand(downCmd)

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the applied migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(migrator *migration.Migrator) error {
				return printVersion(cmd, migrator)
			})
		},
	})

	return migrateCmd
}

// withMigrator opens a migrator from the environment and closes it after run.
func withMigrator(run func(migrator *migration.Migrator) error) error {
	tooling, err := loadTooling()
	if err != nil {
		return err
	}

	migrator, err := migration.Open(tooling.DatabaseURL, tooling.MigrationPath, newLogger())
	if err != nil {
		return err
	}
	defer migrator.Close()

	return run(migrator)
}

func printVersion(cmd *cobra.Command, migrator *migration.Migrator) error {
	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}

	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "version %d (%s)\n", version, state)
	return nil
}
