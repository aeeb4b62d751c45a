package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/data/repos"
	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type CatalogService interface {
	ListParts(dbc dbctx.Context) ([]*catalog.Part, error)
	CreatePart(dbc dbctx.Context, name string, unit *string) (*catalog.Part, error)

	ListComplexes(dbc dbctx.Context) ([]*catalog.ComplexWithParts, error)
	CreateComplex(dbc dbctx.Context, name string, description *string) (*catalog.ComplexWithParts, error)
	GetComplex(dbc dbctx.Context, id uuid.UUID) (*catalog.ComplexWithParts, error)
	SetComplexPart(dbc dbctx.Context, complexID, partID uuid.UUID, quantity int) (*catalog.ComplexWithParts, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	metrics     *observability.Metrics
	partRepo    repos.PartRepo
	complexRepo repos.ComplexRepo
	linkRepo    repos.ComplexPartRepo
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	metrics *observability.Metrics,
	partRepo repos.PartRepo,
	complexRepo repos.ComplexRepo,
	linkRepo repos.ComplexPartRepo,
) CatalogService {
	return &catalogService{
		db:          db,
		log:         baseLog.With("service", "CatalogService"),
		metrics:     metrics,
		partRepo:    partRepo,
		complexRepo: complexRepo,
		linkRepo:    linkRepo,
	}
}

func (s *catalogService) ListParts(dbc dbctx.Context) ([]*catalog.Part, error) {
	const op = "ListParts"
	var out []*catalog.Part
	err := runInTx(dbc, s.db, true, func(tx *gorm.DB) error {
		rows, err := s.partRepo.ListOrderedByName(dbc.Context(), tx)
		if err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		out = rows
		return nil
	})
	if err != nil {
		s.log.Error("ListParts failed", "error", err)
		return nil, err
	}
	if out == nil {
		out = []*catalog.Part{}
	}
	return out, nil
}

func (s *catalogService) CreatePart(dbc dbctx.Context, name string, unit *string) (*catalog.Part, error) {
	const op = "CreatePart"
	if strings.TrimSpace(name) == "" {
		return nil, catalog.NewError(catalog.CodeValidation, op, "part name is required", nil)
	}
	part := &catalog.Part{ID: uuid.New(), Name: name, Unit: unit}

	err := runInTx(dbc, s.db, false, func(tx *gorm.DB) error {
		ctx := dbc.Context()
		existing, err := s.partRepo.GetByName(ctx, tx, name)
		if err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		if existing != nil {
			return catalog.DuplicatePartName(op, name, nil)
		}
		if _, err := s.partRepo.Create(ctx, tx, []*catalog.Part{part}); err != nil {
			if catalog.IsCode(err, catalog.CodeDuplicateName) {
				return catalog.DuplicatePartName(op, name, err)
			}
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		return nil
	})
	if err != nil {
		if !catalog.IsCode(err, catalog.CodeDuplicateName) {
			s.log.Error("CreatePart failed", "error", err, "name", name)
		}
		return nil, err
	}
	s.log.Info("Part created", "part_id", part.ID, "name", part.Name)
	return part, nil
}

func (s *catalogService) ListComplexes(dbc dbctx.Context) ([]*catalog.ComplexWithParts, error) {
	const op = "ListComplexes"
	var out []*catalog.ComplexWithParts
	err := runInTx(dbc, s.db, true, func(tx *gorm.DB) error {
		rows, err := s.complexRepo.ListOrderedByName(dbc.Context(), tx)
		if err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		out, err = s.expand(dbc.Context(), tx, rows)
		if err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("ListComplexes failed", "error", err)
		return nil, err
	}
	return out, nil
}

func (s *catalogService) CreateComplex(dbc dbctx.Context, name string, description *string) (*catalog.ComplexWithParts, error) {
	const op = "CreateComplex"
	cx := &catalog.Complex{ID: uuid.New(), Name: name, Description: description}
	err := runInTx(dbc, s.db, false, func(tx *gorm.DB) error {
		if _, err := s.complexRepo.Create(dbc.Context(), tx, []*catalog.Complex{cx}); err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("CreateComplex failed", "error", err, "name", name)
		return nil, err
	}
	s.log.Info("Complex created", "complex_id", cx.ID, "name", cx.Name)
	return &catalog.ComplexWithParts{
		ID:          cx.ID,
		Name:        cx.Name,
		Description: cx.Description,
		Parts:       []catalog.PartLine{},
	}, nil
}

func (s *catalogService) GetComplex(dbc dbctx.Context, id uuid.UUID) (*catalog.ComplexWithParts, error) {
	const op = "GetComplex"
	var out *catalog.ComplexWithParts
	err := runInTx(dbc, s.db, true, func(tx *gorm.DB) error {
		var err error
		out, err = s.loadExpanded(dbc.Context(), tx, op, id)
		return err
	})
	if err != nil {
		if !catalog.IsCode(err, catalog.CodeNotFound) {
			s.log.Error("GetComplex failed", "error", err, "complex_id", id)
		}
		return nil, err
	}
	return out, nil
}

func (s *catalogService) SetComplexPart(dbc dbctx.Context, complexID, partID uuid.UUID, quantity int) (*catalog.ComplexWithParts, error) {
	const op = "SetComplexPart"
	ctx, span := observability.Tracer().Start(dbc.Context(), "catalog.SetComplexPart")
	defer span.End()
	span.SetAttributes(
		attribute.String("complex_id", complexID.String()),
		attribute.String("part_id", partID.String()),
		attribute.Int("quantity", quantity),
	)

	var out *catalog.ComplexWithParts
	err := runInTx(dbctx.Context{Ctx: ctx, Tx: dbc.Tx}, s.db, false, func(tx *gorm.DB) error {
		cx, err := s.complexRepo.GetByID(ctx, tx, complexID)
		if err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		if cx == nil {
			return catalog.ComplexNotFound(op, complexID)
		}
		part, err := s.partRepo.GetByID(ctx, tx, partID)
		if err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		if part == nil {
			return catalog.PartNotFound(op, partID)
		}
		if _, err := s.linkRepo.Upsert(ctx, tx, complexID, partID, quantity); err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		expanded, err := s.expand(ctx, tx, []*catalog.Complex{cx})
		if err != nil {
			return catalog.Wrap(catalog.CodeInternal, op, err)
		}
		out = expanded[0]
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if !catalog.IsCode(err, catalog.CodeNotFound) {
			s.log.Error("SetComplexPart failed", "error", err, "complex_id", complexID, "part_id", partID)
		}
		return nil, err
	}
	s.log.Debug("Complex part set", "complex_id", complexID, "part_id", partID, "quantity", catalog.ClampQuantity(quantity))
	return out, nil
}

func (s *catalogService) loadExpanded(ctx context.Context, tx *gorm.DB, op string, id uuid.UUID) (*catalog.ComplexWithParts, error) {
	cx, err := s.complexRepo.GetByID(ctx, tx, id)
	if err != nil {
		return nil, catalog.Wrap(catalog.CodeInternal, op, err)
	}
	if cx == nil {
		return nil, catalog.ComplexNotFound(op, id)
	}
	rows, err := s.expand(ctx, tx, []*catalog.Complex{cx})
	if err != nil {
		return nil, catalog.Wrap(catalog.CodeInternal, op, err)
	}
	return rows[0], nil
}

// expand joins complexes against their links and parts. Links pointing at a
// missing part are dropped and reported as a consistency warning.
func (s *catalogService) expand(ctx context.Context, tx *gorm.DB, complexes []*catalog.Complex) ([]*catalog.ComplexWithParts, error) {
	out := make([]*catalog.ComplexWithParts, 0, len(complexes))
	if len(complexes) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(complexes))
	for _, cx := range complexes {
		ids = append(ids, cx.ID)
	}
	links, err := s.linkRepo.GetByComplexIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	partIDs := make([]uuid.UUID, 0, len(links))
	seen := map[uuid.UUID]bool{}
	for _, l := range links {
		if !seen[l.PartID] {
			seen[l.PartID] = true
			partIDs = append(partIDs, l.PartID)
		}
	}
	parts, err := s.partRepo.GetByIDs(ctx, tx, partIDs)
	if err != nil {
		return nil, err
	}
	partByID := make(map[uuid.UUID]*catalog.Part, len(parts))
	for _, p := range parts {
		partByID[p.ID] = p
	}
	linesByComplex := map[uuid.UUID][]catalog.PartLine{}
	for _, l := range links {
		p := partByID[l.PartID]
		if p == nil {
			s.reportDangling(l.ComplexID, l.PartID)
			continue
		}
		linesByComplex[l.ComplexID] = append(linesByComplex[l.ComplexID], catalog.PartLine{
			PartID:   p.ID,
			Name:     p.Name,
			Unit:     p.Unit,
			Quantity: l.Quantity,
		})
	}
	for _, cx := range complexes {
		lines := linesByComplex[cx.ID]
		if lines == nil {
			lines = []catalog.PartLine{}
		}
		out = append(out, &catalog.ComplexWithParts{
			ID:          cx.ID,
			Name:        cx.Name,
			Description: cx.Description,
			Parts:       lines,
		})
	}
	return out, nil
}

func (s *catalogService) reportDangling(complexID, partID uuid.UUID) {
	s.log.Warn("Skipping link to missing part", "complex_id", complexID, "part_id", partID)
	s.metrics.DanglingLink()
}
