package app

import (
	"strings"
	"time"

	dbpkg "github.com/yungbote/complexparts-backend/internal/data/db"
	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/platform/envutil"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type Config struct {
	Port string

	DB dbpkg.Config

	SeedOnStartup bool
	SeedFile      string

	FrontendDir string
	CORSOrigins []string

	MetricsEnabled bool
	Otel           observability.OtelConfig

	ShutdownTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	otelEnabled := envutil.Bool("OTEL_ENABLED", false, log)
	serviceName := envutil.String("OTEL_SERVICE_NAME", "complexparts", log)
	sampleRatio := float64(envutil.Int("OTEL_SAMPLE_PERCENT", 100, log)) / 100

	return Config{
		Port: envutil.String("PORT", "8000", log),
		DB: dbpkg.Config{
			Driver:           envutil.String("DB_DRIVER", dbpkg.DriverSQLite, log),
			SQLitePath:       envutil.String("SQLITE_PATH", "complexes.db", log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", log),
			PostgresName:     envutil.String("POSTGRES_NAME", "complexes", log),
			SlowThreshold:    time.Duration(envutil.Int("DB_SLOW_QUERY_MS", 1000, log)) * time.Millisecond,
		},
		SeedOnStartup:  envutil.Bool("SEED_ON_STARTUP", true, log),
		SeedFile:       envutil.String("SEED_FILE", "", log),
		FrontendDir:    envutil.String("FRONTEND_DIR", "", log),
		CORSOrigins:    envutil.List("CORS_ALLOW_ORIGINS", []string{"*"}, log),
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true, log),
		Otel: observability.OtelConfig{
			Enabled:     otelEnabled,
			ServiceName: serviceName,
			Environment: envutil.String("LOG_MODE", "development", log),
			Version:     envutil.String("APP_VERSION", "dev", log),
			Endpoint:    strings.TrimSpace(envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			SampleRatio: sampleRatio,
		},
		ShutdownTimeout: time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", 10, log)) * time.Second,
	}
}
