package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
)

// SweetFilter narrows List results. Zero-value fields impose no constraint;
// set fields combine with logical AND.
type SweetFilter struct {
	Name     string // case-insensitive substring
	Category string // exact match
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// SweetRepository is the persistence port for Sweet (DIP).
//
// DecrementStock and IncrementStock are the storage-level conditional updates
// the ledger is built on: the guard and the mutation happen in one atomic
// statement, so concurrent callers on the same sweet are serialized by the
// database row without any application lock.
type SweetRepository interface {
	Create(ctx context.Context, sweet *entity.Sweet) error
	GetByID(ctx context.Context, id string) (*entity.Sweet, error)
	Update(ctx context.Context, sweet *entity.Sweet) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter SweetFilter) ([]*entity.Sweet, error)
	Categories(ctx context.Context) ([]string, error)

	// DecrementStock subtracts qty only if quantity >= qty. Reports whether a
	// row was updated; false means the sweet is missing or stock is short.
	DecrementStock(ctx context.Context, id string, qty int64, at time.Time) (bool, error)
	// IncrementStock adds qty unconditionally and returns the new quantity.
	// found is false when the sweet does not exist.
	IncrementStock(ctx context.Context, id string, qty int64, at time.Time) (newQty int64, found bool, err error)
}
