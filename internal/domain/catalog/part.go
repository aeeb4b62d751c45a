package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Part is an atomic inventory item. Names are unique and compared case-sensitively.
type Part struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null;uniqueIndex:idx_part_name" json:"name"`
	Unit *string   `gorm:"column:unit" json:"unit"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Part) TableName() string { return "part" }

func (p *Part) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
