package repository

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
)

// PurchaseRepository is the persistence port for purchase records.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Purchase, error)
}
