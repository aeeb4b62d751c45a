package catalog

import "github.com/google/uuid"

// PartLine is one expanded link of a complex.
type PartLine struct {
	PartID   uuid.UUID `json:"part_id"`
	Name     string    `json:"name"`
	Unit     *string   `json:"unit"`
	Quantity int       `json:"quantity"`
}

// ComplexWithParts is a complex joined against its links and their parts.
type ComplexWithParts struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Parts       []PartLine `json:"parts"`
}

// Selection asks for Count instances of a complex.
type Selection struct {
	ComplexID uuid.UUID `json:"complex_id"`
	Count     int       `json:"count"`
}

// PartTotal is one row of an aggregation report.
type PartTotal struct {
	PartID        uuid.UUID `json:"part_id"`
	Name          string    `json:"name"`
	Unit          *string   `json:"unit"`
	TotalQuantity int       `json:"total_quantity"`
}
