package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/apidoc"
	"resume-generator/internal/artifacts"
	"resume-generator/internal/resumes"
	"resume-generator/internal/services/health"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/server"
	"resume-generator/internal/shared/storage/db"
	localstore "resume-generator/internal/shared/storage/object/local"
	s3store "resume-generator/internal/shared/storage/object/s3"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/compile"
	"resume-generator/resume/service"
	"resume-generator/resume/templates"
)

// App holds shared dependencies and the router built from them.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Repo           resumes.Repo
	Cache          artifacts.Cache
	Compiler       *compile.Compiler
	Pipeline       *service.Pipeline
	ResumeService  *resumes.Service
	ResumesHandler *resumes.Handler
	HealthHandler  *health.Handler

	closers []io.Closer
}

// Build prepares every dependency named by cfg and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	if err := buildRepo(ctx, app); err != nil {
		app.Close()
		return nil, err
	}
	if err := buildCache(ctx, app); err != nil {
		app.Close()
		return nil, err
	}

	registry := templates.Default()
	app.Compiler = compile.New(compile.Options{
		Engine:     cfg.LaTeXEngine,
		Timeout:    cfg.LaTeXTimeout,
		TempDir:    cfg.LaTeXTempDir,
		SupportDir: cfg.LaTeXSupportDir,
	})
	app.Pipeline = service.NewPipeline(registry, app.Compiler)
	app.ResumeService = &resumes.Service{
		Repo:     app.Repo,
		Pipeline: app.Pipeline,
		Cache:    app.Cache,
	}
	app.ResumesHandler = resumes.NewHandler(app.ResumeService)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	engines := make([]string, 0, len(registry.Engines()))
	for _, e := range registry.Engines() {
		engines = append(engines, app.Compiler.EngineFor(e))
	}
	app.HealthHandler = health.NewHandler(health.NewService(cfg.ServiceVersion, cfg.ResumeStore, pinger, app.Compiler, dedupe(engines)))

	doc, err := apidoc.Load(ctx, cfg.ServiceVersion)
	if err != nil {
		app.Close()
		return nil, err
	}
	openAPI, err := apidoc.Handler(doc)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		ResumesHandler: app.ResumesHandler,
		HealthHandler:  app.HealthHandler,
		OpenAPI:        openAPI,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":   cfg.Env,
		"store": app.Config.ResumeStore,
		"cache": app.Cache.Name(),
	})
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildRepo(ctx context.Context, app *App) error {
	cfg := app.Config
	switch cfg.ResumeStore {
	case config.StoreSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		app.closers = append(app.closers, sqlDB)
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			return err
		}
		app.DB = sqlDB
		app.Repo = &resumes.SQLiteRepo{DB: sqlDB}
		return nil

	case config.StorePostgres:
		sqlDB, err := connectPostgres(ctx, cfg)
		if err != nil {
			if isDevLike(cfg.Env) {
				telemetry.Warn("bootstrap.db_fallback", map[string]any{"error": err.Error()})
				app.Config.ResumeStore = config.StoreMemory
				app.Repo = resumes.NewMemoryRepo()
				return nil
			}
			return err
		}
		app.closers = append(app.closers, sqlDB)
		app.DB = sqlDB
		app.Repo = &resumes.PGRepo{DB: sqlDB}
		return nil

	default:
		app.Config.ResumeStore = config.StoreMemory
		app.Repo = resumes.NewMemoryRepo()
		return nil
	}
}

func connectPostgres(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for RESUME_STORE=postgres")
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB, db.DialectPostgres); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}
	return sqlDB, nil
}

func buildCache(ctx context.Context, app *App) error {
	cfg := app.Config
	switch cfg.ArtifactCache {
	case config.CacheLocal:
		app.Cache = artifacts.NewStoreCache(localstore.New(cfg.LocalStoreDir), "local")
	case config.CacheS3:
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return fmt.Errorf("artifact cache: %w", err)
		}
		app.Cache = artifacts.NewStoreCache(store, "s3")
	case config.CacheRedis:
		client, err := artifacts.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			if isDevLike(cfg.Env) {
				telemetry.Warn("bootstrap.cache_fallback", map[string]any{"error": err.Error()})
				app.Cache = artifacts.Nop{}
				return nil
			}
			return fmt.Errorf("artifact cache: %w", err)
		}
		app.closers = append(app.closers, client)
		app.Cache = artifacts.NewRedisCache(client, cfg.ArtifactTTL)
	default:
		app.Cache = artifacts.Nop{}
	}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
