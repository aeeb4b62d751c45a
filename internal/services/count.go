package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/data/repos"
	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/modules/inventory"
	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type CountService interface {
	CountParts(dbc dbctx.Context, selections []catalog.Selection) ([]catalog.PartTotal, error)
}

type countService struct {
	db          *gorm.DB
	log         *logger.Logger
	metrics     *observability.Metrics
	partRepo    repos.PartRepo
	complexRepo repos.ComplexRepo
	linkRepo    repos.ComplexPartRepo
}

func NewCountService(
	db *gorm.DB,
	baseLog *logger.Logger,
	metrics *observability.Metrics,
	partRepo repos.PartRepo,
	complexRepo repos.ComplexRepo,
	linkRepo repos.ComplexPartRepo,
) CountService {
	return &countService{
		db:          db,
		log:         baseLog.With("service", "CountService"),
		metrics:     metrics,
		partRepo:    partRepo,
		complexRepo: complexRepo,
		linkRepo:    linkRepo,
	}
}

func (s *countService) CountParts(dbc dbctx.Context, selections []catalog.Selection) ([]catalog.PartTotal, error) {
	ctx, span := observability.Tracer().Start(dbc.Context(), "catalog.CountParts")
	defer span.End()
	span.SetAttributes(attribute.Int("selections", len(selections)))

	var out []catalog.PartTotal
	err := runInTx(dbctx.Context{Ctx: ctx, Tx: dbc.Tx}, s.db, true, func(tx *gorm.DB) error {
		snap := &repoSnapshot{tx: tx, parts: s.partRepo, complexes: s.complexRepo, links: s.linkRepo}
		rows, err := inventory.CountParts(ctx, snap, selections, s.reportDangling)
		if err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		code := catalog.CodeOf(err)
		if code == "" {
			code = catalog.CodeInternal
			err = catalog.Wrap(code, "CountParts", err)
		}
		s.metrics.ObserveCount(string(code), len(selections))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code != catalog.CodeNotFound {
			s.log.Error("CountParts failed", "error", err)
		}
		return nil, err
	}
	s.metrics.ObserveCount("ok", len(selections))
	span.SetAttributes(attribute.Int("parts", len(out)))
	return out, nil
}

func (s *countService) reportDangling(complexID, partID uuid.UUID) {
	s.log.Warn("Skipping link to missing part", "complex_id", complexID, "part_id", partID)
	s.metrics.DanglingLink()
}

// repoSnapshot answers inventory queries from one transaction.
type repoSnapshot struct {
	tx        *gorm.DB
	parts     repos.PartRepo
	complexes repos.ComplexRepo
	links     repos.ComplexPartRepo
}

func (r *repoSnapshot) ComplexExists(ctx context.Context, id uuid.UUID) (bool, error) {
	cx, err := r.complexes.GetByID(ctx, r.tx, id)
	if err != nil {
		return false, fmt.Errorf("load complex %s: %w", id, err)
	}
	return cx != nil, nil
}

func (r *repoSnapshot) LinksForComplex(ctx context.Context, complexID uuid.UUID) ([]*catalog.ComplexPart, error) {
	return r.links.GetByComplexID(ctx, r.tx, complexID)
}

func (r *repoSnapshot) PartsByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Part, error) {
	return r.parts.GetByIDs(ctx, r.tx, ids)
}
