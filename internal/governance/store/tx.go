package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	txcontext "github.com/pewpola/dao-condominium/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// governanceLockKey is the advisory lock every governance mutation serializes on.
const governanceLockKey int64 = 0x636f6e646f

// InMemoryTx serializes mutations on a single mutex.
type InMemoryTx struct {
	mu sync.Mutex
}

func NewInMemoryTx() *InMemoryTx {
	return &InMemoryTx{}
}

func (t *InMemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

// PostgresTx runs fn inside a transaction holding the governance advisory lock,
// so mutations from every replica are applied in a single order.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

type PostgresTxOption func(*PostgresTx)

// WithLockTimeout bounds transactions whose context carries no deadline.
func WithLockTimeout(d time.Duration) PostgresTxOption {
	return func(t *PostgresTx) {
		if d > 0 {
			t.timeout = d
		}
	}
}

func NewPostgresTx(db *sql.DB, opts ...PostgresTxOption) *PostgresTx {
	t := &PostgresTx{db: db, timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, governanceLockKey); err != nil {
		return fmt.Errorf("acquire governance lock: %w", err)
	}

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
