package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
	"github.com/sweetshop/sweet-shop-api/pkg/logger"
)

// Ledger owns the authoritative stock quantities and their mutation rules.
// Purchase and restock go through storage-level conditional updates, so two
// concurrent purchases of the same sweet can never both succeed when their
// combined quantity exceeds the available stock: the guard and the decrement
// are one atomic statement and the database row serializes the callers.
type Ledger struct {
	txRunner  TxRunner
	sweets    repository.SweetRepository
	purchases repository.PurchaseRepository
	cache     CacheInvalidator
	log       *logger.Logger
}

// New builds the ledger. cache and log may be nil.
func New(
	txRunner TxRunner,
	sweets repository.SweetRepository,
	purchases repository.PurchaseRepository,
	cache CacheInvalidator,
	log *logger.Logger,
) *Ledger {
	return &Ledger{txRunner: txRunner, sweets: sweets, purchases: purchases, cache: cache, log: log}
}

// Purchase decrements stock by qty if enough is available and records the
// purchase, all in one transaction. Fails with ErrNotFound when the sweet
// does not exist (or was deleted concurrently), ErrInsufficientStock when
// qty exceeds the current stock; in both cases nothing is mutated.
func (l *Ledger) Purchase(ctx context.Context, userID, sweetID string, qty int64) (*dto.PurchaseResponse, error) {
	if userID == "" || sweetID == "" {
		return nil, domain.ErrInvalidInput
	}
	if qty <= 0 {
		return nil, domain.NewValidationError(domain.FieldViolation{
			Field: "quantity", Message: "quantity must be a positive integer",
		})
	}

	var purchase *entity.Purchase
	err := l.txRunner.Run(ctx, func(
		sweets repository.SweetRepository,
		purchases repository.PurchaseRepository,
	) error {
		sweet, err := sweets.GetByID(ctx, sweetID)
		if err != nil {
			return err
		}
		if sweet == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		ok, err := sweets.DecrementStock(ctx, sweetID, qty, now)
		if err != nil {
			return err
		}
		if !ok {
			// The guard rejected the update: short stock, or the row vanished
			// between the read above and the update (concurrent delete).
			current, err := sweets.GetByID(ctx, sweetID)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientStock
		}

		purchase = &entity.Purchase{
			ID:        uuid.New().String(),
			SweetID:   sweetID,
			UserID:    userID,
			Quantity:  qty,
			UnitPrice: sweet.Price,
			Total:     sweet.Price.Mul(decimal.NewFromInt(qty)),
			CreatedAt: now,
		}
		return purchases.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	l.invalidate(ctx)
	if l.log != nil {
		l.log.Info().
			Str("purchase_id", purchase.ID).
			Str("sweet_id", sweetID).
			Int64("quantity", qty).
			Msg("purchase completed")
	}
	return toPurchaseResponse(purchase), nil
}

// Restock adds qty to the sweet's stock atomically and returns the new level.
// Increments are applied by the database, so concurrent restocks never lose
// an update.
func (l *Ledger) Restock(ctx context.Context, sweetID string, qty int64) (*dto.RestockResponse, error) {
	if sweetID == "" {
		return nil, domain.ErrInvalidInput
	}
	if qty <= 0 {
		return nil, domain.NewValidationError(domain.FieldViolation{
			Field: "quantity", Message: "quantity must be a positive integer",
		})
	}

	newQty, found, err := l.sweets.IncrementStock(ctx, sweetID, qty, time.Now())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	l.invalidate(ctx)
	if l.log != nil {
		l.log.Info().
			Str("sweet_id", sweetID).
			Int64("added", qty).
			Int64("quantity", newQty).
			Msg("sweet restocked")
	}
	return &dto.RestockResponse{SweetID: sweetID, Quantity: newQty}, nil
}

// ListPurchases returns a user's purchase history, newest first.
func (l *Ledger) ListPurchases(ctx context.Context, userID string, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := l.purchases.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (l *Ledger) invalidate(ctx context.Context) {
	if l.cache != nil {
		l.cache.Invalidate(ctx)
	}
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		PurchaseID: p.ID,
		SweetID:    p.SweetID,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		Total:      p.Total,
		CreatedAt:  p.CreatedAt,
	}
}
