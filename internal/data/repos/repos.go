package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/data/repos/catalog"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type PartRepo = catalog.PartRepo
type ComplexRepo = catalog.ComplexRepo
type ComplexPartRepo = catalog.ComplexPartRepo

func NewPartRepo(db *gorm.DB, log *logger.Logger) PartRepo { return catalog.NewPartRepo(db, log) }

func NewComplexRepo(db *gorm.DB, log *logger.Logger) ComplexRepo {
	return catalog.NewComplexRepo(db, log)
}

func NewComplexPartRepo(db *gorm.DB, log *logger.Logger) ComplexPartRepo {
	return catalog.NewComplexPartRepo(db, log)
}
