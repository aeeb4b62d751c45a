package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/data/repos"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type Repos struct {
	Part        repos.PartRepo
	Complex     repos.ComplexRepo
	ComplexPart repos.ComplexPartRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Part:        repos.NewPartRepo(db, log),
		Complex:     repos.NewComplexRepo(db, log),
		ComplexPart: repos.NewComplexPartRepo(db, log),
	}
}
