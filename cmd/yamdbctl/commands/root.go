// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package commands implements the yamdbctl command tree.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
)

var (
	// Global flags
	migrationsDir string
	verbose       bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "yamdbctl",
	Short: "YamDB operator tool",
	Long: `yamdbctl manages a YamDB deployment.

Settings come from the environment (DATABASE_URL, CONFIRMATION_SECRET,
MAIL_TRANSPORT, REDIS_URL) or from the file named by ENV_FILE (default .env).`,
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "Directory of SQL migrations (overrides MIGRATIONS_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCreateSuperuserCmd())
}

// loadTooling reads the settings and applies flag overrides.
func loadTooling() (*config.Tooling, error) {
	tooling, err := config.LoadTooling()
	if err != nil {
		return nil, err
	}
	if migrationsDir != "" {
		tooling.MigrationPath = migrationsDir
	}
	return tooling, nil
}

// newLogger writes text logs to stderr so that stdout stays scriptable.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
