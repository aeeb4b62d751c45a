package inventory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
)

// Snapshot is the read view CountParts needs. Implementations are expected to
// answer from one consistent unit of work.
type Snapshot interface {
	ComplexExists(ctx context.Context, id uuid.UUID) (bool, error)
	LinksForComplex(ctx context.Context, complexID uuid.UUID) ([]*catalog.ComplexPart, error)
	PartsByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Part, error)
}

// DanglingFunc is told about links whose part row is missing.
type DanglingFunc func(complexID, partID uuid.UUID)

// CountParts sums link.Quantity*Count per part over every selection with a
// positive count and returns the totals ordered by part name.
//
// The first selection naming an unknown complex aborts the run with a
// not_found error and no partial result.
func CountParts(ctx context.Context, snap Snapshot, selections []catalog.Selection, onDangling DanglingFunc) ([]catalog.PartTotal, error) {
	const op = "CountParts"

	totals := map[uuid.UUID]*catalog.PartTotal{}
	order := make([]uuid.UUID, 0)
	parts := map[uuid.UUID]*catalog.Part{}
	missing := map[uuid.UUID]bool{}

	for _, sel := range selections {
		if sel.Count <= 0 {
			continue
		}
		ok, err := snap.ComplexExists(ctx, sel.ComplexID)
		if err != nil {
			return nil, catalog.Wrap(catalog.CodeInternal, op, err)
		}
		if !ok {
			return nil, catalog.ComplexNotFound(op, sel.ComplexID)
		}
		links, err := snap.LinksForComplex(ctx, sel.ComplexID)
		if err != nil {
			return nil, catalog.Wrap(catalog.CodeInternal, op, err)
		}
		if err := resolveParts(ctx, snap, links, parts, missing); err != nil {
			return nil, catalog.Wrap(catalog.CodeInternal, op, err)
		}

		for _, link := range links {
			if link == nil {
				continue
			}
			p := parts[link.PartID]
			if p == nil {
				if onDangling != nil {
					onDangling(sel.ComplexID, link.PartID)
				}
				continue
			}
			add := link.Quantity * sel.Count
			if cur, seen := totals[link.PartID]; seen {
				cur.TotalQuantity += add
				continue
			}
			totals[link.PartID] = &catalog.PartTotal{
				PartID:        p.ID,
				Name:          p.Name,
				Unit:          p.Unit,
				TotalQuantity: add,
			}
			order = append(order, link.PartID)
		}
	}

	out := make([]catalog.PartTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// resolveParts loads the parts referenced by links that are not yet known.
func resolveParts(ctx context.Context, snap Snapshot, links []*catalog.ComplexPart, known map[uuid.UUID]*catalog.Part, missing map[uuid.UUID]bool) error {
	var want []uuid.UUID
	queued := map[uuid.UUID]bool{}
	for _, l := range links {
		if l == nil || known[l.PartID] != nil || missing[l.PartID] || queued[l.PartID] {
			continue
		}
		queued[l.PartID] = true
		want = append(want, l.PartID)
	}
	if len(want) == 0 {
		return nil
	}
	rows, err := snap.PartsByIDs(ctx, want)
	if err != nil {
		return err
	}
	for _, p := range rows {
		if p != nil {
			known[p.ID] = p
		}
	}
	for _, id := range want {
		if known[id] == nil {
			missing[id] = true
		}
	}
	return nil
}
