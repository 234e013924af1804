package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = "id, email, password_hash, name, role, status, created_at, updated_at"

// UserRepo implements UserRepository over PostgreSQL (usable with pool or tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter. Pass a pool or tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persists a new user. The email column carries a unique index.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrapErr("insert user", err)
	}
	return nil
}

// GetByID fetches a user by ID. Returns nil, nil when absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// FindByEmail fetches a user by email. Returns nil, nil when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get user", err)
	}
	return &u, nil
}
