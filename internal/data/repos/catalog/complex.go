package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type ComplexRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Complex) ([]*types.Complex, error)

	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Complex, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Complex, error)
	ListOrderedByName(ctx context.Context, tx *gorm.DB) ([]*types.Complex, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type complexRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComplexRepo(db *gorm.DB, baseLog *logger.Logger) ComplexRepo {
	return &complexRepo{db: db, log: baseLog.With("repo", "ComplexRepo")}
}

func (r *complexRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Complex) ([]*types.Complex, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Complex{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *complexRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Complex, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Complex
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *complexRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Complex, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *complexRepo) ListOrderedByName(ctx context.Context, tx *gorm.DB) ([]*types.Complex, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Complex
	if err := t.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *complexRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.Complex{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
