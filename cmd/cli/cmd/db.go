package cmd

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"warehouse-quote/adapters/catalog"
	"warehouse-quote/internal/config"
	"warehouse-quote/internal/errors"
	"warehouse-quote/internal/logging"
)

var dbDSN string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the PostgreSQL catalog schema",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the catalog tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogDB(contextOf(cmd), func(ctx context.Context, db *sql.DB) error {
			return catalog.MigrateUp(ctx, db, logging.Named("migrate"))
		})
	},
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the most recent catalog migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogDB(contextOf(cmd), func(ctx context.Context, db *sql.DB) error {
			return catalog.MigrateDown(ctx, db, logging.Named("migrate"))
		})
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied catalog migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogDB(contextOf(cmd), catalog.MigrationStatus)
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbMigrateCmd, dbRollbackCmd, dbStatusCmd)
	dbCmd.PersistentFlags().StringVar(&dbDSN, "dsn", "", "PostgreSQL DSN (defaults to catalog.dsn)")
}

func withCatalogDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	cfg := config.Get().Catalog
	dsn := dbDSN
	if dsn == "" {
		dsn = cfg.DSN
	}
	if dsn == "" {
		return errors.Config("no PostgreSQL DSN: set --dsn or catalog.dsn", nil)
	}

	src, err := catalog.OpenPostgres(dsn, cfg.QueryTimeout, logging.Logger)
	if err != nil {
		return err
	}
	defer src.Close()
	return fn(ctx, src.DB())
}
