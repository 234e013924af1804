package usecase_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/application/usecase"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

// memoryRepo mirrors the SQL adapter's filter semantics in memory: name is a
// case-insensitive substring, category exact, price bounds inclusive, ordered
// by created_at descending then id.
type memoryRepo struct {
	sweets map[string]*entity.Sweet
}

func newMemoryRepo(sweets ...*entity.Sweet) *memoryRepo {
	r := &memoryRepo{sweets: make(map[string]*entity.Sweet)}
	for _, s := range sweets {
		cp := *s
		r.sweets[s.ID] = &cp
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, sweet *entity.Sweet) error {
	cp := *sweet
	r.sweets[sweet.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*entity.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) Update(_ context.Context, sweet *entity.Sweet) error {
	if _, ok := r.sweets[sweet.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *sweet
	r.sweets[sweet.ID] = &cp
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.sweets[id]; !ok {
		return false, nil
	}
	delete(r.sweets, id)
	return true, nil
}

func (r *memoryRepo) List(_ context.Context, filter repository.SweetFilter) ([]*entity.Sweet, error) {
	var out []*entity.Sweet
	for _, s := range r.sweets {
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && s.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && s.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, s := range r.sweets {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out, nil
}

func (r *memoryRepo) DecrementStock(_ context.Context, id string, qty int64, at time.Time) (bool, error) {
	s, ok := r.sweets[id]
	if !ok || s.Quantity < qty {
		return false, nil
	}
	s.Quantity -= qty
	s.UpdatedAt = at
	return true, nil
}

func (r *memoryRepo) IncrementStock(_ context.Context, id string, qty int64, at time.Time) (int64, bool, error) {
	s, ok := r.sweets[id]
	if !ok {
		return 0, false, nil
	}
	s.Quantity += qty
	s.UpdatedAt = at
	return s.Quantity, true, nil
}

// vanishingRepo drops one sweet right after it is read, modeling a delete
// that commits between the use case's read and its write.
type vanishingRepo struct {
	*memoryRepo
	vanish string
}

func (r *vanishingRepo) GetByID(ctx context.Context, id string) (*entity.Sweet, error) {
	s, err := r.memoryRepo.GetByID(ctx, id)
	if id == r.vanish {
		delete(r.memoryRepo.sweets, id)
	}
	return s, err
}

// recordingCache records cache traffic and optionally serves a warm entry.
type recordingCache struct {
	warm        []*entity.Sweet
	gets        int
	sets        int
	invalidated int
}

func (c *recordingCache) GetList(context.Context, repository.SweetFilter) ([]*entity.Sweet, bool) {
	c.gets++
	if c.warm != nil {
		return c.warm, true
	}
	return nil, false
}

func (c *recordingCache) SetList(_ context.Context, _ repository.SweetFilter, sweets []*entity.Sweet) {
	c.sets++
	c.warm = sweets
}

func (c *recordingCache) Invalidate(context.Context) {
	c.invalidated++
	c.warm = nil
}

func sweet(id, name, category, price string, qty int64, createdAt time.Time) *entity.Sweet {
	return &entity.Sweet{
		ID:        id,
		Name:      name,
		Category:  category,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func catalog() *memoryRepo {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return newMemoryRepo(
		sweet("s1", "Red Velvet Cake", "Cake", "15.99", 20, base.Add(4*time.Hour)),
		sweet("s2", "Croissant", "Pastry", "2.99", 45, base.Add(3*time.Hour)),
		sweet("s3", "Chocolate Truffle", "Chocolate", "5.99", 50, base.Add(2*time.Hour)),
		sweet("s4", "Dark Chocolate Bar", "Chocolate", "6.99", 35, base.Add(time.Hour)),
		sweet("s5", "Oatmeal Cookie", "Cookie", "1.99", 80, base),
	)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func names(items []dto.SweetResponse) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestList_NoFilterReturnsAllOnce(t *testing.T) {
	uc := usecase.NewSweetUseCase(catalog(), nil)

	out, err := uc.List(context.Background(), dto.SweetFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Red Velvet Cake", "Croissant", "Chocolate Truffle", "Dark Chocolate Bar", "Oatmeal Cookie",
	}, names(out.Items), "every sweet appears exactly once, newest first")
}

func TestList_ExcludesDeleted(t *testing.T) {
	repo := catalog()
	uc := usecase.NewSweetUseCase(repo, nil)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "s2"))

	out, err := uc.List(ctx, dto.SweetFilterRequest{})
	require.NoError(t, err)
	assert.NotContains(t, names(out.Items), "Croissant")
	assert.Len(t, out.Items, 4)
}

func TestList_FiltersAreConjunctive(t *testing.T) {
	uc := usecase.NewSweetUseCase(catalog(), nil)
	ctx := context.Background()

	// Category and minimum price must both hold: the cheap Croissant matches
	// neither clause and the cakes below 10 would fail the price bound.
	out, err := uc.List(ctx, dto.SweetFilterRequest{Category: "Cake", MinPrice: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Velvet Cake"}, names(out.Items))

	out, err = uc.List(ctx, dto.SweetFilterRequest{Name: "chocolate", Category: "Chocolate"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chocolate Truffle", "Dark Chocolate Bar"}, names(out.Items))

	out, err = uc.List(ctx, dto.SweetFilterRequest{Name: "chocolate", MaxPrice: dec("6.00")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chocolate Truffle"}, names(out.Items))
}

func TestList_PriceBoundsAreInclusive(t *testing.T) {
	uc := usecase.NewSweetUseCase(catalog(), nil)

	out, err := uc.List(context.Background(), dto.SweetFilterRequest{
		MinPrice: dec("2.99"), MaxPrice: dec("6.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Croissant", "Chocolate Truffle", "Dark Chocolate Bar"}, names(out.Items))
}

func TestList_NoMatchReturnsEmptyList(t *testing.T) {
	uc := usecase.NewSweetUseCase(catalog(), nil)

	out, err := uc.List(context.Background(), dto.SweetFilterRequest{Name: "licorice"})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestList_ServesWarmCacheAndFillsOnMiss(t *testing.T) {
	repo := catalog()
	cache := &recordingCache{}
	uc := usecase.NewSweetUseCase(repo, cache)
	ctx := context.Background()

	out, err := uc.List(ctx, dto.SweetFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 5)
	assert.Equal(t, 1, cache.sets, "a miss fills the cache")

	// Second read is served from the cache even after a repo-level change.
	_, err = repo.Delete(ctx, "s1")
	require.NoError(t, err)
	out, err = uc.List(ctx, dto.SweetFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 5)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)
}

func TestMutationsInvalidateCache(t *testing.T) {
	repo := catalog()
	cache := &recordingCache{}
	uc := usecase.NewSweetUseCase(repo, cache)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSweetRequest{
		Name: "Caramel Popcorn", Category: "Candy", Price: decimal.RequireFromString("3.99"), Quantity: 40,
	})
	require.NoError(t, err)

	name := "Butter Croissant"
	_, err = uc.Update(ctx, "s2", dto.UpdateSweetRequest{Name: &name})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "s3"))

	assert.Equal(t, 3, cache.invalidated, "create, update and delete each drop cached listings")
}

func TestCreate_Validation(t *testing.T) {
	uc := usecase.NewSweetUseCase(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSweetRequest{
		Name:     strings.Repeat("x", 101),
		Category: "",
		Price:    decimal.Zero,
		Quantity: -1,
		ImageURL: "not a url",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	fields := make([]string, 0, len(vErr.Violations))
	for _, v := range vErr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"name", "category", "price", "quantity", "image_url"}, fields)
}

func TestCreate_PersistsAndReturnsSweet(t *testing.T) {
	repo := newMemoryRepo()
	uc := usecase.NewSweetUseCase(repo, nil)

	out, err := uc.Create(context.Background(), dto.CreateSweetRequest{
		Name:        "Mint Chocolate Chip",
		Category:    "Ice Cream",
		Price:       decimal.RequireFromString("4.49"),
		Quantity:    60,
		Description: "Cool mint ice cream with chocolate chips",
		ImageURL:    "https://example.com/mint.jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, int64(60), out.Quantity)

	stored, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Mint Chocolate Chip", stored.Name)
}

func TestGetByID_NotFound(t *testing.T) {
	uc := usecase.NewSweetUseCase(newMemoryRepo(), nil)
	_, err := uc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_PartialLeavesOtherFieldsAndQuantity(t *testing.T) {
	repo := catalog()
	uc := usecase.NewSweetUseCase(repo, nil)
	ctx := context.Background()

	price := decimal.RequireFromString("17.49")
	out, err := uc.Update(ctx, "s1", dto.UpdateSweetRequest{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Red Velvet Cake", out.Name)
	assert.True(t, out.Price.Equal(price))
	assert.Equal(t, int64(20), out.Quantity, "update must not touch stock")
}

func TestUpdate_NotFoundAndValidation(t *testing.T) {
	uc := usecase.NewSweetUseCase(catalog(), nil)
	ctx := context.Background()

	name := "Anything"
	_, err := uc.Update(ctx, "missing", dto.UpdateSweetRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	empty := ""
	_, err = uc.Update(ctx, "s1", dto.UpdateSweetRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// A delete committing between the read and the write must surface as
// not-found, never as a success that persisted nothing.
func TestUpdate_RowDeletedDuringEdit(t *testing.T) {
	repo := &vanishingRepo{memoryRepo: catalog(), vanish: "s1"}
	uc := usecase.NewSweetUseCase(repo, nil)

	name := "Renamed Cake"
	_, err := uc.Update(context.Background(), "s1", dto.UpdateSweetRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, getErr := repo.GetByID(context.Background(), "s1")
	require.NoError(t, getErr)
	assert.Nil(t, stored, "the row is gone and no edit may resurrect it")
}

func TestDelete_NotFound(t *testing.T) {
	uc := usecase.NewSweetUseCase(newMemoryRepo(), nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), "missing"), domain.ErrNotFound)
}

func TestCategories_DistinctSorted(t *testing.T) {
	uc := usecase.NewSweetUseCase(catalog(), nil)

	out, err := uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cake", "Chocolate", "Cookie", "Pastry"}, out.Categories)
}
