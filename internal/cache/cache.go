package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fhuszti/assets-cdn-go/internal/model"
	"github.com/fhuszti/assets-cdn-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// Cache keeps asset records in redis so hot assets skip the metadata store.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string, ttl time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb, ttl: ttl}
}

func (c *Cache) GetAssetRecord(ctx context.Context, bucket, id string) (*model.Asset, error) {
	log.Printf("getting cache entry for asset #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(bucket, id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var a model.Asset
	if err := json.Unmarshal([]byte(val), &a); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}

	return &a, nil
}

func (c *Cache) SetAssetRecord(ctx context.Context, bucket, id string, a *model.Asset) {
	log.Printf("creating cache entry for asset #%s, valid for %s...", id, c.ttl)

	data, err := json.Marshal(a)
	if err != nil {
		log.Printf("failed marshalling asset #%s for cache: %v", id, err)
		return
	}

	if err := c.client.Set(ctx, getCacheKey(bucket, id), data, c.ttl).Err(); err != nil {
		log.Printf("redis set failed for asset #%s: %v", id, err)
	}
}

func (c *Cache) DeleteAssetRecord(ctx context.Context, bucket, id string) error {
	log.Printf("deleting cache entry for asset #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(bucket, id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(bucket, id string) string {
	return "asset:" + bucket + ":" + id
}
