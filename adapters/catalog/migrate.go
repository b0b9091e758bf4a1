package catalog

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func prepareGoose() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return nil
}

// MigrateUp creates or upgrades the catalog tables
func MigrateUp(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "catalog.MigrateUp"

	if err := prepareGoose(); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	logger.Info("running catalog migrations")
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	logger.Info("catalog migrations completed")
	return nil
}

// MigrateDown rolls back the most recent migration
func MigrateDown(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "catalog.MigrateDown"

	if err := prepareGoose(); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	logger.Info("rolling back last catalog migration")
	if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

// MigrationStatus logs the applied state of each migration
func MigrationStatus(ctx context.Context, db *sql.DB) error {
	const operation = "catalog.MigrationStatus"

	if err := prepareGoose(); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}
