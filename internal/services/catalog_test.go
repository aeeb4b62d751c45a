package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/data/repos"
	"github.com/yungbote/complexparts-backend/internal/data/repos/testutil"
	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
)

func newCatalogService(t *testing.T, db *gorm.DB) CatalogService {
	t.Helper()
	log := testutil.Logger(t)
	return NewCatalogService(db, log, nil,
		repos.NewPartRepo(db, log),
		repos.NewComplexRepo(db, log),
		repos.NewComplexPartRepo(db, log),
	)
}

func TestCatalogService_CreatePart(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newCatalogService(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	p, err := svc.CreatePart(dbc, "Bolt", testutil.PtrString("pcs"))
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if p.ID == uuid.Nil || p.Name != "Bolt" || p.Unit == nil || *p.Unit != "pcs" {
		t.Fatalf("CreatePart: unexpected part %+v", p)
	}

	if _, err := svc.CreatePart(dbc, "Bolt", nil); !catalog.IsCode(err, catalog.CodeDuplicateName) {
		t.Fatalf("CreatePart duplicate: want duplicate_name, got %v", err)
	}
	if _, err := svc.CreatePart(dbc, "   ", nil); !catalog.IsCode(err, catalog.CodeValidation) {
		t.Fatalf("CreatePart blank: want validation, got %v", err)
	}
	if _, err := svc.CreatePart(dbc, "", nil); !catalog.IsCode(err, catalog.CodeValidation) {
		t.Fatalf("CreatePart empty: want validation, got %v", err)
	}

	// Names match exactly: surrounding spaces make a different part.
	spaced, err := svc.CreatePart(dbc, "Bolt ", nil)
	if err != nil {
		t.Fatalf("CreatePart(%q): %v", "Bolt ", err)
	}
	if spaced.Name != "Bolt " || spaced.ID == p.ID {
		t.Fatalf("CreatePart(%q): name rewritten or merged: %+v", "Bolt ", spaced)
	}

	nut, err := svc.CreatePart(dbc, "Nut", testutil.PtrString(" "))
	if err != nil {
		t.Fatalf("CreatePart(Nut): %v", err)
	}
	if nut.Unit == nil || *nut.Unit != " " {
		t.Fatalf("unit should be stored as given, got %v", nut.Unit)
	}

	parts, err := svc.ListParts(dbc)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	want := []string{"Bolt", "Bolt ", "Nut"}
	if len(parts) != len(want) {
		t.Fatalf("ListParts: len=%d want=%d", len(parts), len(want))
	}
	for i, name := range want {
		if parts[i].Name != name {
			t.Fatalf("ListParts[%d]: got=%q want=%q", i, parts[i].Name, name)
		}
	}
	if parts[2].Unit == nil || *parts[2].Unit != " " {
		t.Fatalf("stored unit changed: %v", parts[2].Unit)
	}
}

func TestCatalogService_ListPartsEmpty(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newCatalogService(t, db)

	parts, err := svc.ListParts(dbctx.Context{Ctx: context.Background(), Tx: tx})
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if parts == nil || len(parts) != 0 {
		t.Fatalf("ListParts: want empty non-nil slice, got %#v", parts)
	}
}

func TestCatalogService_Complexes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newCatalogService(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	siteB, err := svc.CreateComplex(dbc, "Site B", nil)
	if err != nil {
		t.Fatalf("CreateComplex: %v", err)
	}
	if siteB.Parts == nil || len(siteB.Parts) != 0 {
		t.Fatalf("new complex should have an empty part list, got %#v", siteB.Parts)
	}
	siteA, err := svc.CreateComplex(dbc, "Site A", testutil.PtrString("north yard"))
	if err != nil {
		t.Fatalf("CreateComplex: %v", err)
	}
	if siteA.Description == nil || *siteA.Description != "north yard" {
		t.Fatalf("CreateComplex: description not kept: %+v", siteA)
	}
	// Complex names are not unique.
	if _, err := svc.CreateComplex(dbc, "Site A", nil); err != nil {
		t.Fatalf("CreateComplex duplicate name: %v", err)
	}

	bolt, err := svc.CreatePart(dbc, "Bolt", nil)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := svc.SetComplexPart(dbc, siteA.ID, bolt.ID, 40); err != nil {
		t.Fatalf("SetComplexPart: %v", err)
	}

	got, err := svc.GetComplex(dbc, siteA.ID)
	if err != nil {
		t.Fatalf("GetComplex: %v", err)
	}
	if len(got.Parts) != 1 || got.Parts[0].PartID != bolt.ID || got.Parts[0].Quantity != 40 || got.Parts[0].Name != "Bolt" {
		t.Fatalf("GetComplex: unexpected parts %+v", got.Parts)
	}

	if _, err := svc.GetComplex(dbc, uuid.New()); !catalog.IsCode(err, catalog.CodeNotFound) {
		t.Fatalf("GetComplex missing: want not_found, got %v", err)
	}

	list, err := svc.ListComplexes(dbc)
	if err != nil {
		t.Fatalf("ListComplexes: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListComplexes: len=%d want=3", len(list))
	}
	if list[0].Name != "Site A" || list[1].Name != "Site A" || list[2].Name != "Site B" {
		t.Fatalf("ListComplexes: not ordered by name: %q %q %q", list[0].Name, list[1].Name, list[2].Name)
	}
	for _, cx := range list {
		if cx.ID == siteA.ID && len(cx.Parts) != 1 {
			t.Fatalf("ListComplexes: Site A parts=%d want=1", len(cx.Parts))
		}
		if cx.ID != siteA.ID && len(cx.Parts) != 0 {
			t.Fatalf("ListComplexes: %s parts=%d want=0", cx.ID, len(cx.Parts))
		}
	}
}

func TestCatalogService_CreateComplexAcceptsAnyName(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newCatalogService(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	for _, name := range []string{"", "  ", " Site C "} {
		cx, err := svc.CreateComplex(dbc, name, testutil.PtrString(" "))
		if err != nil {
			t.Fatalf("CreateComplex(%q): %v", name, err)
		}
		if cx.Name != name || len(cx.Parts) != 0 {
			t.Fatalf("CreateComplex(%q): unexpected %+v", name, cx)
		}
		if cx.Description == nil || *cx.Description != " " {
			t.Fatalf("CreateComplex(%q): description rewritten: %v", name, cx.Description)
		}
		got, err := svc.GetComplex(dbc, cx.ID)
		if err != nil {
			t.Fatalf("GetComplex(%q): %v", name, err)
		}
		if got.Name != name {
			t.Fatalf("GetComplex: stored name=%q want=%q", got.Name, name)
		}
	}
}

func TestCatalogService_SetComplexPart(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newCatalogService(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	cx, err := svc.CreateComplex(dbc, "Site A", nil)
	if err != nil {
		t.Fatalf("CreateComplex: %v", err)
	}
	bolt, err := svc.CreatePart(dbc, "Bolt", nil)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}

	if _, err := svc.SetComplexPart(dbc, uuid.New(), bolt.ID, 1); !catalog.IsCode(err, catalog.CodeNotFound) {
		t.Fatalf("unknown complex: want not_found, got %v", err)
	}
	if _, err := svc.SetComplexPart(dbc, cx.ID, uuid.New(), 1); !catalog.IsCode(err, catalog.CodeNotFound) {
		t.Fatalf("unknown part: want not_found, got %v", err)
	}

	out, err := svc.SetComplexPart(dbc, cx.ID, bolt.ID, -5)
	if err != nil {
		t.Fatalf("SetComplexPart(-5): %v", err)
	}
	if len(out.Parts) != 1 || out.Parts[0].Quantity != 0 {
		t.Fatalf("negative quantity should clamp to 0, got %+v", out.Parts)
	}

	for i := 0; i < 2; i++ {
		out, err = svc.SetComplexPart(dbc, cx.ID, bolt.ID, 7)
		if err != nil {
			t.Fatalf("SetComplexPart(7) #%d: %v", i, err)
		}
	}
	if len(out.Parts) != 1 || out.Parts[0].Quantity != 7 {
		t.Fatalf("repeated set should leave one link with quantity 7, got %+v", out.Parts)
	}

	var n int64
	if err := tx.Model(&catalog.ComplexPart{}).Where("complex_id = ?", cx.ID).Count(&n).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if n != 1 {
		t.Fatalf("links=%d want=1", n)
	}
}

func TestCatalogService_SetComplexPartConcurrentWriters(t *testing.T) {
	db := testutil.FileDB(t)
	svc := newCatalogService(t, db)
	dbc := dbctx.Background()

	cx, err := svc.CreateComplex(dbc, "Site A", nil)
	if err != nil {
		t.Fatalf("CreateComplex: %v", err)
	}
	bolt, err := svc.CreatePart(dbc, "Bolt", nil)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}

	const writers = 16
	written := map[int]bool{}
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		qty := (i + 1) * 10
		written[qty] = true
		wg.Add(1)
		go func(i, qty int) {
			defer wg.Done()
			_, errs[i] = svc.SetComplexPart(dbctx.Background(), cx.ID, bolt.ID, qty)
		}(i, qty)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: %v", i, err)
		}
	}

	var rows []catalog.ComplexPart
	if err := db.Where("complex_id = ? AND part_id = ?", cx.ID, bolt.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("links=%d want=1", len(rows))
	}
	if !written[rows[0].Quantity] {
		t.Fatalf("final quantity %d was never written", rows[0].Quantity)
	}

	got, err := svc.GetComplex(dbc, cx.ID)
	if err != nil {
		t.Fatalf("GetComplex: %v", err)
	}
	if len(got.Parts) != 1 || got.Parts[0].Quantity != rows[0].Quantity {
		t.Fatalf("GetComplex: %+v", got.Parts)
	}
}
