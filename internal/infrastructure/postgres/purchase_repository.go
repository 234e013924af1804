package postgres

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implements PurchaseRepository over PostgreSQL (usable with pool or tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository builds the adapter. Pass a pool or tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persists a purchase record.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, sweet_id, user_id, quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SweetID, p.UserID, p.Quantity, p.UnitPrice, p.Total, p.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert purchase", err)
	}
	return nil
}

// ListByUser returns a user's purchases, newest first, paginated.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, sweet_id, user_id, quantity, unit_price, total, created_at
		FROM purchases WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, wrapErr("list purchases", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.SweetID, &p.UserID, &p.Quantity, &p.UnitPrice, &p.Total, &p.CreatedAt); err != nil {
			return nil, wrapErr("scan purchase", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
