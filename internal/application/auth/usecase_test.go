package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/sweet-shop-api/internal/application/auth"
	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/pkg/jwt"
)

type memoryUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// brokenUserRepo fails every email lookup.
type brokenUserRepo struct {
	*memoryUserRepo
	err error
}

func (r *brokenUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, r.err
}

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 15, Issuer: "sweet-shop-api"}

func TestRegister_CreatesCustomerWithHashedPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "supersecret", Name: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, out.Role)
	assert.Equal(t, "Ana", out.Name)

	stored := repo.byEmail["ana@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecret", stored.PasswordHash, "password must never be stored in clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemoryUserRepo(), testJWT)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "different"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// A failed uniqueness lookup must propagate, not read as "email free".
func TestRegister_LookupFailurePropagates(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &brokenUserRepo{memoryUserRepo: newMemoryUserRepo(), err: boom}
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "supersecret",
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, repo.byEmail, "no account may be created on a failed lookup")
}

func TestLogin_ReturnsTokenCarryingIdentity(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemoryUserRepo(), testJWT)
	ctx := context.Background()

	registered, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleCustomer, role)
}

func TestLogin_Failures(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemoryUserRepo(), testJWT)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := newMemoryUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)
	repo.byEmail["ana@example.com"].Status = "disabled"

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEnsureAdmin(t *testing.T) {
	repo := newMemoryUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "", ""), "blank credentials are a no-op")
	assert.Empty(t, repo.byEmail)

	require.NoError(t, uc.EnsureAdmin(ctx, "admin@example.com", "adminpass"))
	admin := repo.byEmail["admin@example.com"]
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	// Idempotent: a second call must not fail or overwrite.
	require.NoError(t, uc.EnsureAdmin(ctx, "admin@example.com", "otherpass"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("adminpass")))
}
