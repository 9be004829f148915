package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radityabagas/bucketadmin/internal/config"
	"github.com/radityabagas/bucketadmin/internal/domain"
)

const (
	listingKeyPrefix  = "listing:page"
	scanBatchSize     = 100
	defaultListingTTL = time.Minute
)

// ListingCache caches listing pages per bucket/prefix/cursor with a bound TTL.
// It is constructed once per process and passed by handle into request-scoped
// logic; folder mutations invalidate the whole bucket's cached pages.
type ListingCache interface {
	GetPage(ctx context.Context, bucket, prefix, cursor string) (*domain.ListingPage, bool, error)
	SetPage(ctx context.Context, bucket, prefix, cursor string, page *domain.ListingPage) error
	InvalidateBucket(ctx context.Context, bucket string) error
}

type redisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopListingCache struct{}

func NewListingCache(cfg config.CacheConfig) (ListingCache, error) {
	if !cfg.Enabled {
		return &noopListingCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ListingTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultListingTTL
	}

	return &redisListingCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopListingCache() ListingCache {
	return &noopListingCache{}
}

func (c *redisListingCache) GetPage(ctx context.Context, bucket, prefix, cursor string) (*domain.ListingPage, bool, error) {
	key := buildListingKey(bucket, prefix, cursor)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var page domain.ListingPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, false, fmt.Errorf("decode listing page cache: %w", err)
	}

	return &page, true, nil
}

func (c *redisListingCache) SetPage(ctx context.Context, bucket, prefix, cursor string, page *domain.ListingPage) error {
	key := buildListingKey(bucket, prefix, cursor)
	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode listing page cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisListingCache) InvalidateBucket(ctx context.Context, bucket string) error {
	prefix := fmt.Sprintf("%s:%s:", listingKeyPrefix, bucket)
	return deleteKeysWithPrefix(ctx, c.client, prefix, scanBatchSize)
}

func (*noopListingCache) GetPage(context.Context, string, string, string) (*domain.ListingPage, bool, error) {
	return nil, false, nil
}

func (*noopListingCache) SetPage(context.Context, string, string, string, *domain.ListingPage) error {
	return nil
}

func (*noopListingCache) InvalidateBucket(context.Context, string) error {
	return nil
}

func buildListingKey(bucket, prefix, cursor string) string {
	sum := sha1.Sum([]byte(prefix + "|" + cursor))
	return fmt.Sprintf("%s:%s:%s", listingKeyPrefix, bucket, hex.EncodeToString(sum[:]))
}
