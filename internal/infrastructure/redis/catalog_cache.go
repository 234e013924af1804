package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sweetshop/sweet-shop-api/internal/application/ledger"
	"github.com/sweetshop/sweet-shop-api/internal/application/usecase"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
	"github.com/sweetshop/sweet-shop-api/pkg/config"
)

var (
	_ usecase.CatalogCache    = (*CatalogCache)(nil)
	_ ledger.CacheInvalidator = (*CatalogCache)(nil)
)

const genKey = "sweets:catalog:gen"

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// CatalogCache caches catalog listings keyed by filter and a generation
// counter. Invalidate bumps the counter, which orphans every cached listing
// at once; orphaned entries expire via TTL. Redis failures degrade to cache
// misses, never to request failures.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache builds the cache with the entry TTL.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// GetList returns the cached listing for the filter, if warm.
func (c *CatalogCache) GetList(ctx context.Context, filter repository.SweetFilter) ([]*entity.Sweet, bool) {
	raw, err := c.client.Get(ctx, c.listKey(ctx, filter)).Bytes()
	if err != nil {
		return nil, false
	}
	var sweets []*entity.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		return nil, false
	}
	return sweets, true
}

// SetList stores a listing under the current generation.
func (c *CatalogCache) SetList(ctx context.Context, filter repository.SweetFilter, sweets []*entity.Sweet) {
	raw, err := json.Marshal(sweets)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.listKey(ctx, filter), raw, c.ttl).Err()
}

// Invalidate drops all cached listings by advancing the generation counter.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	_ = c.client.Incr(ctx, genKey).Err()
}

func (c *CatalogCache) listKey(ctx context.Context, filter repository.SweetFilter) string {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if err != nil {
		gen = 0
	}
	return fmt.Sprintf("sweets:list:%d:%d", gen, filterHash(filter))
}

// filterHash digests the filter fields. Each field is length-prefixed so
// field boundaries survive arbitrary content (a "|" in a name cannot collide
// with a name+category split).
func filterHash(filter repository.SweetFilter) uint64 {
	h := fnv.New64a()
	field := func(s string) { fmt.Fprintf(h, "%d:%s;", len(s), s) }
	field(filter.Name)
	field(filter.Category)
	for _, p := range []*decimal.Decimal{filter.MinPrice, filter.MaxPrice} {
		if p != nil {
			field(p.String())
		} else {
			field("")
		}
	}
	return h.Sum64()
}
