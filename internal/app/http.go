package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/http"
	httpH "github.com/yungbote/complexparts-backend/internal/http/handlers"
	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Part    *httpH.PartHandler
	Complex *httpH.ComplexHandler
	Count   *httpH.CountHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		Part:    httpH.NewPartHandler(log, services.Catalog),
		Complex: httpH.NewComplexHandler(log, services.Catalog),
		Count:   httpH.NewCountHandler(log, services.Count),
	}
}

func wireServer(cfg Config, log *logger.Logger, metrics *observability.Metrics, handlers Handlers) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(":"+cfg.Port, http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		FrontendDir:    cfg.FrontendDir,
		PartHandler:    handlers.Part,
		ComplexHandler: handlers.Complex,
		CountHandler:   handlers.Count,
		HealthHandler:  handlers.Health,
	})
}
