package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productKeyPrefix = "product:sku:"

// RedisClient: кэш карточек товаров. Реализует service.ProductCache.
// Ошибки Redis не пробрасываются: промах кэша равносилен чтению из БД.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return newWithClient(rdb, ttl, log), nil
}

func newWithClient(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisClient {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisClient{client: rdb, ttl: ttl, log: log}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func productKey(sku string) string { return productKeyPrefix + sku }

func (r *RedisClient) GetProduct(ctx context.Context, sku string) (*models.Product, bool) {
	raw, err := r.client.Get(ctx, productKey(sku)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("redis get failed", zap.String("sku", sku), zap.Error(err))
		}
		return nil, false
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		r.log.Warn("cached product is corrupted", zap.String("sku", sku), zap.Error(err))
		_ = r.client.Del(ctx, productKey(sku)).Err()
		return nil, false
	}
	return &p, true
}

func (r *RedisClient) SetProduct(ctx context.Context, p *models.Product) {
	if p == nil || p.SKU == "" {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		r.log.Warn("marshal product for cache", zap.Uint("product_id", p.ID), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, productKey(p.SKU), raw, r.ttl).Err(); err != nil {
		r.log.Warn("redis set failed", zap.String("sku", p.SKU), zap.Error(err))
	}
}

func (r *RedisClient) InvalidateProducts(ctx context.Context, skus ...string) {
	if len(skus) == 0 {
		return
	}
	keys := make([]string, 0, len(skus))
	for _, s := range skus {
		if s != "" {
			keys = append(keys, productKey(s))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("redis del failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
