package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complex is a named bundle of parts. Names are not unique.
type Complex struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null;index" json:"name"`
	Description *string   `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Complex) TableName() string { return "complex" }

func (c *Complex) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
