package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/data/repos"
	"github.com/yungbote/complexparts-backend/internal/data/seed"
	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type SeedService interface {
	// SeedIfEmpty inserts the catalog when the store holds no part and no
	// complex. It reports whether anything was written.
	SeedIfEmpty(dbc dbctx.Context, data *seed.Catalog) (bool, error)
}

type seedService struct {
	db          *gorm.DB
	log         *logger.Logger
	partRepo    repos.PartRepo
	complexRepo repos.ComplexRepo
	linkRepo    repos.ComplexPartRepo
}

func NewSeedService(
	db *gorm.DB,
	baseLog *logger.Logger,
	partRepo repos.PartRepo,
	complexRepo repos.ComplexRepo,
	linkRepo repos.ComplexPartRepo,
) SeedService {
	return &seedService{
		db:          db,
		log:         baseLog.With("service", "SeedService"),
		partRepo:    partRepo,
		complexRepo: complexRepo,
		linkRepo:    linkRepo,
	}
}

func (s *seedService) SeedIfEmpty(dbc dbctx.Context, data *seed.Catalog) (bool, error) {
	if data == nil {
		return false, nil
	}
	ctx := dbc.Context()
	seeded := false
	err := runInTx(dbc, s.db, false, func(tx *gorm.DB) error {
		nParts, err := s.partRepo.Count(ctx, tx)
		if err != nil {
			return fmt.Errorf("count parts: %w", err)
		}
		nComplexes, err := s.complexRepo.Count(ctx, tx)
		if err != nil {
			return fmt.Errorf("count complexes: %w", err)
		}
		if nParts > 0 || nComplexes > 0 {
			return nil
		}

		partIDs := make(map[string]uuid.UUID, len(data.Parts))
		rows := make([]*catalog.Part, 0, len(data.Parts))
		for _, p := range data.Parts {
			row := &catalog.Part{ID: uuid.New(), Name: p.Name, Unit: optional(p.Unit)}
			partIDs[p.Name] = row.ID
			rows = append(rows, row)
		}
		if _, err := s.partRepo.Create(ctx, tx, rows); err != nil {
			return fmt.Errorf("seed parts: %w", err)
		}

		for _, c := range data.Complexes {
			cx := &catalog.Complex{ID: uuid.New(), Name: c.Name, Description: optional(c.Description)}
			if _, err := s.complexRepo.Create(ctx, tx, []*catalog.Complex{cx}); err != nil {
				return fmt.Errorf("seed complex %q: %w", c.Name, err)
			}
			for _, name := range c.PartNames() {
				if _, err := s.linkRepo.Upsert(ctx, tx, cx.ID, partIDs[name], c.Parts[name]); err != nil {
					return fmt.Errorf("seed link %q/%q: %w", c.Name, name, err)
				}
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		s.log.Error("Seeding catalog failed", "error", err)
		return false, err
	}
	if seeded {
		s.log.Info("Seeded empty catalog", "parts", len(data.Parts), "complexes", len(data.Complexes))
	}
	return seeded, nil
}

// optional maps an absent seed value to nil and keeps anything else as given.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
