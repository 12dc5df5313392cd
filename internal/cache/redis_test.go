package cache

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) *RedisClient {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in -short mode")
	}

	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })
	return newWithClient(rdb, time.Minute, zap.NewNop())
}

func TestProductCache_SetGetInvalidate(t *testing.T) {
	r := setupRedis(t)
	ctx := context.Background()

	_, ok := r.GetProduct(ctx, "MUG-1")
	assert.False(t, ok)

	r.SetProduct(ctx, &models.Product{
		ID:     5,
		Name:   "Mug",
		SKU:    "MUG-1",
		Price:  decimal.RequireFromString("9.99"),
		Stock:  3,
		Status: models.ProductPublished,
	})

	got, ok := r.GetProduct(ctx, "MUG-1")
	require.True(t, ok)
	assert.Equal(t, uint(5), got.ID)
	assert.Equal(t, 3, got.Stock)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.99")))

	ttl, err := r.client.TTL(ctx, productKey("MUG-1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	r.InvalidateProducts(ctx, "MUG-1", "")
	_, ok = r.GetProduct(ctx, "MUG-1")
	assert.False(t, ok)
}

func TestProductCache_CorruptedEntryIsDropped(t *testing.T) {
	r := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.client.Set(ctx, productKey("BAD"), "{not json", time.Minute).Err())

	_, ok := r.GetProduct(ctx, "BAD")
	assert.False(t, ok)

	n, err := r.client.Exists(ctx, productKey("BAD")).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
