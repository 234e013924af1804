package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sweetshop/sweet-shop-api/internal/application/ledger"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction, executes fn with tx-bound repositories, and
// commits, or rolls back if fn errors.
func (r *TxRunner) Run(ctx context.Context, fn func(
	sweets repository.SweetRepository,
	purchases repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSweetRepository(tx), NewPurchaseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
