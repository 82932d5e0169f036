// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for the YamDB schema.
//
// # Architecture
//
// The API server calls [RunUp] at startup so the schema is current before
// traffic is served. The yamdbctl CLI uses [Open] for explicit up, down and
// version commands.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator is an open golang-migrate instance bound to a logger.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *slog.Logger
}

// Open prepares a migrator for dsn using the SQL files under migrationsPath.
// The caller must Close it.
func Open(dsn, migrationsPath string, logger *slog.Logger) (*Migrator, error) {
	instance, err := migrate.New("file://"+migrationsPath, convertToPgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}

	instance.Log = &migrateLogger{logger: logger}
	return &Migrator{migrate: instance, logger: logger}, nil
}

// Close releases the source and database handles.
func (m *Migrator) Close() {
	sourceError, dbError := m.migrate.Close()
	if sourceError != nil {
		m.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
	}
	if dbError != nil {
		m.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
	}
}

// Version returns the applied version and dirty flag. Version 0 means no migration ran.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	return version, dirty, nil
}

// Up applies all pending migrations. It is a no-op when the schema is current.
func (m *Migrator) Up() error {
	currentVersion, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", currentVersion)
	}

	m.logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := m.Version()
	m.logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)
	return nil
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}
	if err := m.migrate.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: down failed: %w", err)
	}
	m.logger.Info("migration_rolled_back", slog.Int("steps", steps))
	return nil
}

// RunUp opens a migrator, applies pending migrations and closes it.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	migrator, err := Open(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up()
}

// convertToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5://
// scheme expected by golang-migrate.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return false
}
