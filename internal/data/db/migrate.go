package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Part{},
		&catalog.Complex{},
		&catalog.ComplexPart{},
	)
}
