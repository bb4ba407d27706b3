package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/confsched/internal/db"
)

// FailingUoW wraps a real transaction and makes the FailOn-th ExecContext
// call (1-based, counted across the whole UoW lifetime) return Err. Reads
// pass through. FailOn <= 0 fails every write.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	execs atomic.Int32
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingExec{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Execs reports how many writes have been attempted.
func (u *FailingUoW) Execs() int32 {
	return u.execs.Load()
}

type failingExec struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.execs.Add(1)
	if f.uow.FailOn <= 0 || n == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
