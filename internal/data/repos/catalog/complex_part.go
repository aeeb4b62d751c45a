package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type ComplexPartRepo interface {
	// Upsert writes max(0, quantity) for the (complex, part) pair in one
	// INSERT ... ON CONFLICT statement.
	Upsert(ctx context.Context, tx *gorm.DB, complexID, partID uuid.UUID, quantity int) (*types.ComplexPart, error)

	Get(ctx context.Context, tx *gorm.DB, complexID, partID uuid.UUID) (*types.ComplexPart, error)
	GetByComplexIDs(ctx context.Context, tx *gorm.DB, complexIDs []uuid.UUID) ([]*types.ComplexPart, error)
	GetByComplexID(ctx context.Context, tx *gorm.DB, complexID uuid.UUID) ([]*types.ComplexPart, error)
}

type complexPartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComplexPartRepo(db *gorm.DB, baseLog *logger.Logger) ComplexPartRepo {
	return &complexPartRepo{db: db, log: baseLog.With("repo", "ComplexPartRepo")}
}

func (r *complexPartRepo) Upsert(ctx context.Context, tx *gorm.DB, complexID, partID uuid.UUID, quantity int) (*types.ComplexPart, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	row := &types.ComplexPart{
		ComplexID: complexID,
		PartID:    partID,
		Quantity:  types.ClampQuantity(quantity),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "complex_id"}, {Name: "part_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *complexPartRepo) Get(ctx context.Context, tx *gorm.DB, complexID, partID uuid.UUID) (*types.ComplexPart, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ComplexPart
	if err := t.WithContext(ctx).
		Where("complex_id = ? AND part_id = ?", complexID, partID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *complexPartRepo) GetByComplexIDs(ctx context.Context, tx *gorm.DB, complexIDs []uuid.UUID) ([]*types.ComplexPart, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ComplexPart
	if len(complexIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("complex_id IN ?", complexIDs).
		Order("complex_id ASC, created_at ASC, part_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *complexPartRepo) GetByComplexID(ctx context.Context, tx *gorm.DB, complexID uuid.UUID) ([]*types.ComplexPart, error) {
	if complexID == uuid.Nil {
		return []*types.ComplexPart{}, nil
	}
	return r.GetByComplexIDs(ctx, tx, []uuid.UUID{complexID})
}
