package reconcile

import (
	"context"

	"storefront/internal/repository"
	"storefront/internal/service"

	"go.uber.org/zap"
)

// StockReconciler выравнивает products.stock по сумме остатков цветов.
type StockReconciler struct {
	repo  *repository.Repository
	cache service.ProductCache
	log   *zap.Logger
}

func NewStockReconciler(repo *repository.Repository, cache service.ProductCache, log *zap.Logger) *StockReconciler {
	return &StockReconciler{repo: repo, cache: cache, log: log}
}

// ReconcileStock возвращает число исправленных товаров.
func (r *StockReconciler) ReconcileStock(ctx context.Context) (int, error) {
	ids, err := r.repo.Products.ListColorBearingIDs(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return fixed, err
		}
		drifted, err := r.reconcileOne(ctx, id)
		if err != nil {
			r.log.Error("stock reconcile failed", zap.Uint("product_id", id), zap.Error(err))
			return fixed, err
		}
		if drifted {
			fixed++
		}
	}

	if fixed > 0 {
		r.log.Warn("stock drift fixed", zap.Int("products", fixed))
	} else {
		r.log.Debug("stock aggregates consistent", zap.Int("checked", len(ids)))
	}
	return fixed, nil
}

func (r *StockReconciler) reconcileOne(ctx context.Context, id uint) (bool, error) {
	var (
		drifted bool
		sku     string
	)
	err := r.repo.WithTx(ctx, func(tx *repository.Repository) error {
		rows, err := tx.Products.LockStock(ctx, []uint{id})
		if err != nil {
			return err
		}
		row, ok := rows[id]
		if !ok {
			return nil // удалён между чтениями
		}
		sum, err := tx.Colors.SumStock(ctx, id)
		if err != nil {
			return err
		}
		if sum == row.Stock {
			return nil
		}

		r.log.Warn("stock aggregate drift",
			zap.Uint("product_id", id),
			zap.Int("stored", row.Stock),
			zap.Int("colors_sum", sum),
		)
		drifted, sku = true, row.SKU
		return tx.Products.RecomputeStock(ctx, id)
	})
	if err != nil {
		return false, err
	}
	if drifted && r.cache != nil {
		r.cache.InvalidateProducts(ctx, sku)
	}
	return drifted, nil
}
