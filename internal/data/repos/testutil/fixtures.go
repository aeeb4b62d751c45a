package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/complexparts-backend/internal/domain/catalog"
)

func SeedPart(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, unit *string) *types.Part {
	tb.Helper()
	p := &types.Part{ID: uuid.New(), Name: name, Unit: unit}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed part %q: %v", name, err)
	}
	return p
}

func SeedComplex(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Complex {
	tb.Helper()
	c := &types.Complex{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed complex %q: %v", name, err)
	}
	return c
}

func SeedLink(tb testing.TB, ctx context.Context, tx *gorm.DB, complexID, partID uuid.UUID, quantity int) *types.ComplexPart {
	tb.Helper()
	l := &types.ComplexPart{ComplexID: complexID, PartID: partID, Quantity: quantity}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed link: %v", err)
	}
	return l
}

func PtrString(v string) *string { return &v }
