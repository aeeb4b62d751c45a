package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
	"github.com/yungbote/complexparts-backend/internal/services"
)

type Services struct {
	Catalog services.CatalogService
	Count   services.CountService
	Seed    services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Catalog: services.NewCatalogService(db, log, metrics, r.Part, r.Complex, r.ComplexPart),
		Count:   services.NewCountService(db, log, metrics, r.Part, r.Complex, r.ComplexPart),
		Seed:    services.NewSeedService(db, log, r.Part, r.Complex, r.ComplexPart),
	}
}
