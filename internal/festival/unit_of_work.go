package festival

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork implements contracts.UnitOfWork on a pgx connection pool
// ⭐ SSOT: 패턴 분석 배치의 트랜잭션 경계는 여기서만
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a new unit of work
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// WithinTx runs fn inside a single transaction. Repositories called with
// the context passed to fn participate in that transaction.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
