package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
	"github.com/sweetshop/sweet-shop-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration and login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register creates a customer account: hashes the password with bcrypt and
// persists. Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleCustomer,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password, generates a JWT and returns token + user.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// EnsureAdmin provisions the bootstrap admin account if it does not exist.
// Called once at startup when ADMIN_EMAIL/ADMIN_PASSWORD are configured.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return uc.userRepo.Create(ctx, admin)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
