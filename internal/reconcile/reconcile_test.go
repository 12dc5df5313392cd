package reconcile

import (
	"context"
	"testing"
	"time"

	"storefront/internal/migrate"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type skuRecorder struct{ skus []string }

func (r *skuRecorder) GetProduct(ctx context.Context, sku string) (*models.Product, bool) {
	return nil, false
}
func (r *skuRecorder) SetProduct(ctx context.Context, p *models.Product) {}
func (r *skuRecorder) InvalidateProducts(ctx context.Context, skus ...string) {
	r.skus = append(r.skus, skus...)
}

func TestReconcileStock_FixesDrift(t *testing.T) {
	db := testutil.SetupTestMySQL(t)
	ctx := context.Background()
	require.NoError(t, migrate.MigrateStoreDB(ctx, db, zap.NewNop(), migrate.DefaultMigrateOptions()))
	repo := repository.New(db)

	now := time.Now().UTC()
	mk := func(sku string, stock int) *models.Product {
		p := &models.Product{Name: sku, SKU: sku, Price: decimal.NewFromInt(1), Stock: stock, Status: models.ProductPublished, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.Products.Create(ctx, p))
		return p
	}
	drifted := mk("DRIFT-1", 99)
	consistent := mk("OK-1", 3)
	standalone := mk("SOLO-1", 42)

	for _, c := range []models.ProductColor{
		{ProductID: drifted.ID, Name: "a", Stock: 2},
		{ProductID: drifted.ID, Name: "b", Stock: 5},
		{ProductID: consistent.ID, Name: "c", Stock: 3},
	} {
		c.CreatedAt, c.UpdatedAt = now, now
		require.NoError(t, repo.Colors.Create(ctx, &c))
	}

	cache := &skuRecorder{}
	r := NewStockReconciler(repo, cache, zap.NewNop())

	fixed, err := r.ReconcileStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)
	assert.Equal(t, []string{"DRIFT-1"}, cache.skus)

	got, err := repo.Products.GetByID(ctx, drifted.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	got, err = repo.Products.GetByID(ctx, standalone.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Stock, "products without colors keep their own stock")

	fixed, err = r.ReconcileStock(ctx)
	require.NoError(t, err)
	assert.Zero(t, fixed)
}

func TestScheduler_StopWaitsForLoop(t *testing.T) {
	db := testutil.SetupTestMySQL(t)
	ctx := context.Background()
	require.NoError(t, migrate.MigrateStoreDB(ctx, db, zap.NewNop(), migrate.DefaultMigrateOptions()))

	s := NewScheduler(NewStockReconciler(repository.New(db), nil, zap.NewNop()), time.Hour, zap.NewNop())
	s.Start(ctx)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	s.Stop()
	s.Start(ctx)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler(nil, time.Minute, zap.NewNop())

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}

	// после Stop горутина не запускается, nil reconciler не трогается
	s.Start(context.Background())
}
