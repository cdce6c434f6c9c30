package main

// Run database migrations for the configured store:
//   RESUME_STORE=postgres DATABASE_URL=... go run ./cmd/migrate
//   RESUME_STORE=sqlite SQLITE_PATH=resumes.db go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()
	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())

	switch cfg.ResumeStore {
	case config.StorePostgres:
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database: %v", err)
			os.Exit(1)
		}
		defer sqlDB.Close()
		if err := db.RunMigrations(ctx, sqlDB, db.DialectPostgres); err != nil {
			log.Printf("failed to run migrations: %v", err)
			os.Exit(1)
		}
	case config.StoreSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, opts)
		if err != nil {
			log.Printf("failed to open sqlite: %v", err)
			os.Exit(1)
		}
		defer sqlDB.Close()
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			log.Printf("failed to run migrations: %v", err)
			os.Exit(1)
		}
	default:
		log.Printf("RESUME_STORE=%s has no schema to migrate", cfg.ResumeStore)
	}
}
