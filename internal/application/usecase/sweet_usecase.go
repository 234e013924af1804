package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

// CatalogCache caches List results. The generation-based keys make
// invalidation a single counter bump; staleness between the bump and the
// next read is acceptable (callers refresh after mutations).
type CatalogCache interface {
	GetList(ctx context.Context, filter repository.SweetFilter) ([]*entity.Sweet, bool)
	SetList(ctx context.Context, filter repository.SweetFilter, sweets []*entity.Sweet)
	Invalidate(ctx context.Context)
}

// SweetUseCase catalog CRUD and queries. Quantity is created here but never
// edited here: purchase/restock own it.
type SweetUseCase struct {
	repo  repository.SweetRepository
	cache CatalogCache // may be nil
}

// NewSweetUseCase builds the use case. cache may be nil.
func NewSweetUseCase(repo repository.SweetRepository, cache CatalogCache) *SweetUseCase {
	return &SweetUseCase{repo: repo, cache: cache}
}

// Create validates and persists a new sweet.
func (uc *SweetUseCase) Create(ctx context.Context, in dto.CreateSweetRequest) (*dto.SweetResponse, error) {
	if violations := in.Validate(); len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}
	now := time.Now()
	sweet := &entity.Sweet{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, sweet); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toSweetResponse(sweet), nil
}

// GetByID fetches a sweet by ID.
func (uc *SweetUseCase) GetByID(ctx context.Context, id string) (*dto.SweetResponse, error) {
	sweet, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sweet == nil {
		return nil, domain.ErrNotFound
	}
	return toSweetResponse(sweet), nil
}

// Update applies a partial edit. Stock quantity is not editable here.
func (uc *SweetUseCase) Update(ctx context.Context, id string, in dto.UpdateSweetRequest) (*dto.SweetResponse, error) {
	if violations := in.Validate(); len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}
	sweet, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sweet == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		sweet.Name = *in.Name
	}
	if in.Category != nil {
		sweet.Category = *in.Category
	}
	if in.Price != nil {
		sweet.Price = *in.Price
	}
	if in.Description != nil {
		sweet.Description = *in.Description
	}
	if in.ImageURL != nil {
		sweet.ImageURL = *in.ImageURL
	}
	sweet.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, sweet); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toSweetResponse(sweet), nil
}

// Delete removes a sweet. Deletion is absorbing: any purchase or restock in
// flight either committed against the old row or fails with not-found.
func (uc *SweetUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	uc.invalidate(ctx)
	return nil
}

// List returns the sweets matching every set filter field, served from the
// cache when warm. Order is stable for an unchanged catalog.
func (uc *SweetUseCase) List(ctx context.Context, in dto.SweetFilterRequest) (*dto.SweetListResponse, error) {
	filter := repository.SweetFilter{
		Name:     in.Name,
		Category: in.Category,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	}
	var sweets []*entity.Sweet
	if uc.cache != nil {
		if cached, ok := uc.cache.GetList(ctx, filter); ok {
			sweets = cached
		}
	}
	if sweets == nil {
		var err error
		sweets, err = uc.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		if uc.cache != nil {
			uc.cache.SetList(ctx, filter, sweets)
		}
	}
	items := make([]dto.SweetResponse, 0, len(sweets))
	for _, s := range sweets {
		items = append(items, *toSweetResponse(s))
	}
	return &dto.SweetListResponse{Items: items}, nil
}

// Categories returns the distinct categories currently present, sorted.
func (uc *SweetUseCase) Categories(ctx context.Context) (*dto.CategoryListResponse, error) {
	categories, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(categories)
	return &dto.CategoryListResponse{Categories: categories}, nil
}

func (uc *SweetUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}

func toSweetResponse(s *entity.Sweet) *dto.SweetResponse {
	if s == nil {
		return nil
	}
	return &dto.SweetResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
