package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type PartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Part) ([]*types.Part, error)

	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Part, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Part, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Part, error)
	ListOrderedByName(ctx context.Context, tx *gorm.DB) ([]*types.Part, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type partRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPartRepo(db *gorm.DB, baseLog *logger.Logger) PartRepo {
	return &partRepo{db: db, log: baseLog.With("repo", "PartRepo")}
}

func (r *partRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Part) ([]*types.Part, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Part{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		if isUniqueViolation(err) {
			name := ""
			if len(rows) == 1 && rows[0] != nil {
				name = rows[0].Name
			}
			return nil, types.DuplicatePartName("PartRepo.Create", name, err)
		}
		return nil, err
	}
	return rows, nil
}

func (r *partRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Part, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Part
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *partRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Part, error) {
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

// GetByName matches the name exactly, case included.
func (r *partRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Part, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Part
	if err := t.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *partRepo) ListOrderedByName(ctx context.Context, tx *gorm.DB) ([]*types.Part, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Part
	if err := t.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	// Byte order regardless of the database collation.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *partRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.Part{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
