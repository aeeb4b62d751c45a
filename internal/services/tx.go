package services

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
)

// runInTx runs fn in one unit of work. A caller supplied transaction gets a
// savepoint; otherwise a new transaction is opened on db. Read-only work on
// Postgres runs at REPEATABLE READ so every query sees the same snapshot.
func runInTx(dbc dbctx.Context, db *gorm.DB, readOnly bool, fn func(tx *gorm.DB) error) error {
	ctx := dbc.Context()
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(ctx).Transaction(fn)
	}
	var opts []*sql.TxOptions
	if readOnly && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return db.WithContext(ctx).Transaction(fn, opts...)
}
