package ledger

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

// TxRunner executes a function inside one DB transaction, handing it
// repositories bound to that transaction. Guarantees the guarded decrement
// and the purchase record commit or roll back as a unit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sweets repository.SweetRepository,
		purchases repository.PurchaseRepository,
	) error) error
}

// CacheInvalidator is the minimal contract the ledger needs to drop stale
// catalog reads after a successful mutation. Implemented by the Redis
// catalog cache; a nil invalidator disables invalidation.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}
