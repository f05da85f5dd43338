package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/codec"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/google/uuid"
	"github.com/jon4hz/reviewshelf/internal/config"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ReviewSummaryCachePrefix prefixes every review summary key.
const ReviewSummaryCachePrefix = "review-summary-"

// PrefixedCache wraps a cache.Cache and adds a prefix to all keys.
// Values are stored JSON encoded so the same wrapper works for every store.
type PrefixedCache[T any] struct {
	cache  *cache.Cache[any]
	prefix string
}

// NewPrefixedCache creates a new prefixed cache wrapper.
func NewPrefixedCache[T any](cache *cache.Cache[any], prefix string) *PrefixedCache[T] {
	return &PrefixedCache[T]{
		cache:  cache,
		prefix: prefix,
	}
}

// NewReviewSummaryCache creates a summary cache for the configured backend.
// Keys are namespaced per call so summaries computed by one catalog are never
// served to another that shares the same redis instance.
func NewReviewSummaryCache[T any](cfg *config.CacheConfig) *PrefixedCache[T] {
	return NewPrefixedCache[T](
		newCacheInstanceByType(cfg),
		ReviewSummaryCachePrefix+uuid.NewString()+"-",
	)
}

// Get retrieves a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Get(ctx context.Context, key any) (T, error) {
	value, err := p.cache.Get(ctx, p.key(key))
	if err != nil {
		return *new(T), err
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		// redis hands values back as strings
		data = []byte(v)
	default:
		return *new(T), fmt.Errorf("unexpected cache value type %T", value)
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return *new(T), err
	}
	return result, nil
}

// Set stores a value in the cache with the prefixed key.
func (p *PrefixedCache[T]) Set(ctx context.Context, key any, object T, options ...store.Option) error {
	data, err := json.Marshal(object)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, p.key(key), data, options...)
}

// Delete removes a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Delete(ctx context.Context, key any) error {
	return p.cache.Delete(ctx, p.key(key))
}

// GetType returns the cache type.
func (p *PrefixedCache[T]) GetType() string {
	return p.cache.GetType()
}

// GetStats returns the cache statistics.
func (p *PrefixedCache[T]) GetStats() *codec.Stats {
	return p.cache.GetCodec().GetStats()
}

func (p *PrefixedCache[T]) key(key any) string {
	return p.prefix + fmt.Sprintf("%v", key)
}

func newCacheInstanceByType(cfg *config.CacheConfig) *cache.Cache[any] {
	if cfg == nil {
		return newMemoryCache()
	}
	switch cfg.Type {
	case config.CacheTypeMemory:
		return newMemoryCache()
	case config.CacheTypeRedis:
		return newRedisCache(cfg)
	default:
		return newMemoryCache()
	}
}

func newMemoryCache() *cache.Cache[any] {
	// summaries are invalidated by revision, never by ttl
	gocacheClient := gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	gocacheStore := go_store.NewGoCache(gocacheClient)
	return cache.New[any](gocacheStore)
}

func newRedisCache(cfg *config.CacheConfig) *cache.Cache[any] {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	var opts []store.Option
	if cfg.TTL > 0 {
		opts = append(opts, store.WithExpiration(cfg.TTL))
	}
	redisStore := redis_store.NewRedis(redisClient, opts...)
	return cache.New[any](redisStore)
}
