package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

var _ repository.SweetRepository = (*SweetRepo)(nil)

const sweetColumns = "id, name, category, price, quantity, description, image_url, created_at, updated_at"

// SweetRepo implements SweetRepository over PostgreSQL (usable with pool or tx).
type SweetRepo struct {
	q Querier
}

// NewSweetRepository builds the persistence adapter. Pass a pool or tx (Querier).
func NewSweetRepository(q Querier) *SweetRepo {
	return &SweetRepo{q: q}
}

// Create persists a new sweet.
func (r *SweetRepo) Create(ctx context.Context, sweet *entity.Sweet) error {
	query := `
		INSERT INTO sweets (id, name, category, price, quantity, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		sweet.ID, sweet.Name, sweet.Category, sweet.Price, sweet.Quantity,
		sweet.Description, sweet.ImageURL, sweet.CreatedAt, sweet.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert sweet", err)
	}
	return nil
}

// GetByID fetches a sweet by ID. Returns nil, nil when absent.
func (r *SweetRepo) GetByID(ctx context.Context, id string) (*entity.Sweet, error) {
	var s entity.Sweet
	err := r.q.QueryRow(ctx,
		"SELECT "+sweetColumns+" FROM sweets WHERE id = $1", id,
	).Scan(
		&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity,
		&s.Description, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get sweet", err)
	}
	return &s, nil
}

// Update rewrites the descriptive fields. Quantity is excluded on purpose:
// it moves only through DecrementStock/IncrementStock. Zero matched rows
// (the sweet was deleted since it was read) is reported as ErrNotFound, not
// swallowed.
func (r *SweetRepo) Update(ctx context.Context, sweet *entity.Sweet) error {
	query := `
		UPDATE sweets SET name = $2, category = $3, price = $4, description = $5, image_url = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		sweet.ID, sweet.Name, sweet.Category, sweet.Price,
		sweet.Description, sweet.ImageURL, sweet.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update sweet", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a sweet. Reports whether a row was deleted.
func (r *SweetRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete sweet", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List returns the sweets matching every set filter field, ordered newest
// first with id as tie-breaker so the order is stable across calls.
func (r *SweetRepo) List(ctx context.Context, filter repository.SweetFilter) ([]*entity.Sweet, error) {
	query := "SELECT " + sweetColumns + " FROM sweets"
	var conds []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list sweets", err)
	}
	defer rows.Close()
	var list []*entity.Sweet
	for rows.Next() {
		var s entity.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity,
			&s.Description, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, wrapErr("scan sweet", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Categories returns the distinct categories currently present.
func (r *SweetRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM sweets ORDER BY category`)
	if err != nil {
		return nil, wrapErr("list categories", err)
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, wrapErr("scan category", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DecrementStock applies the guarded decrement in one atomic statement. The
// WHERE clause is the whole oversell defense: the row is only updated when
// enough stock remains, and concurrent callers are serialized by the row.
func (r *SweetRepo) DecrementStock(ctx context.Context, id string, qty int64, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sweets SET quantity = quantity - $2, updated_at = $3
		WHERE id = $1 AND quantity >= $2`,
		id, qty, at,
	)
	if err != nil {
		return false, wrapErr("decrement stock", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// IncrementStock adds qty atomically and returns the new quantity.
func (r *SweetRepo) IncrementStock(ctx context.Context, id string, qty int64, at time.Time) (int64, bool, error) {
	var newQty int64
	err := r.q.QueryRow(ctx, `
		UPDATE sweets SET quantity = quantity + $2, updated_at = $3
		WHERE id = $1
		RETURNING quantity`,
		id, qty, at,
	).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, wrapErr("increment stock", err)
	}
	return newQty, true, nil
}
