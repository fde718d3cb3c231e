package cmd

import (
	"context"
	"log"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory (default db/migrations/<driver>)")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	driver := "sqlite3"
	if cfg.Database.DriverOrDefault() == "postgres" {
		driver = "pgx"
	}

	// Each driver has its own DDL dialect under db/migrations.
	dir := migrateDir
	if dir == "" {
		dir = filepath.Join("db", "migrations", cfg.Database.DriverOrDefault())
	}

	db, err := goose.OpenDBWithDriver(driver, cfg.Database.Source)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}

	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}

	return nil
}
