package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ComplexPart records how many units of a part one complex requires.
// (ComplexID, PartID) is the primary key, so a pair has at most one row.
type ComplexPart struct {
	ComplexID uuid.UUID `gorm:"type:uuid;primaryKey" json:"complex_id"`
	Complex   *Complex  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ComplexID;references:ID" json:"-"`

	PartID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"part_id"`
	Part   *Part     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PartID;references:ID" json:"-"`

	Quantity int `gorm:"column:quantity;not null;default:0;check:chk_complex_part_quantity,quantity >= 0" json:"quantity"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ComplexPart) TableName() string { return "complex_part" }

// ClampQuantity is the write rule for link quantities: negatives become zero.
func ClampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
