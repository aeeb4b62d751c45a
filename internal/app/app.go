package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	dbpkg "github.com/yungbote/complexparts-backend/internal/data/db"
	"github.com/yungbote/complexparts-backend/internal/data/seed"
	"github.com/yungbote/complexparts-backend/internal/http"
	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	store        *dbpkg.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	store, err := dbpkg.New(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := store.DB()

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, metrics, reposet)

	if cfg.SeedOnStartup {
		if err := seedCatalog(ctx, cfg, serviceset); err != nil {
			_ = store.Close()
			log.Sync()
			return nil, err
		}
	}

	handlerset := wireHandlers(log, theDB, serviceset)
	server := wireServer(cfg, log, metrics, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

func seedCatalog(ctx context.Context, cfg Config, services Services) error {
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed catalog: %w", err)
	}
	if _, err := services.Seed.SeedIfEmpty(dbctx.Context{Ctx: ctx}, data); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Server.Run()
}

// Shutdown stops accepting requests and drains in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		errs = append(errs, a.otelShutdown(ctx))
		cancel()
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
