package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/brp/internal/db"
)

// FailOnNthExec wraps a DBTX and injects Err on the Nth ExecContext call.
// Calls are counted starting at 1; FailOn <= 0 fails every write.
// Reads pass through untouched.
type FailOnNthExec struct {
	db.DBTX
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.FailOn <= 0 || n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// Calls returns how many writes were attempted.
func (f *FailOnNthExec) Calls() int {
	return int(f.count.Load())
}
