package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ColorStockRow: остаток цвета, прочитанный под блокировкой.
type ColorStockRow struct {
	ID        uint
	ProductID uint
	Name      string
	Stock     int
}

type ColorRepo interface {
	Create(ctx context.Context, c *models.ProductColor) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.ProductColor, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.ProductColor, error)
	Delete(ctx context.Context, id uint) (bool, error)
	SumStock(ctx context.Context, productID uint) (int, error)

	LockStock(ctx context.Context, ids []uint) (map[uint]ColorStockRow, error)
	DecrementStock(ctx context.Context, id uint, qty int) (bool, error)
}

type colorRepo struct{ db *gorm.DB }

func NewColorRepo(db *gorm.DB) ColorRepo { return &colorRepo{db: db} }

func (r *colorRepo) Create(ctx context.Context, c *models.ProductColor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *colorRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ProductColor{}).Where("id = ?", id).Updates(fields).Error
}

func (r *colorRepo) GetByID(ctx context.Context, id uint) (*models.ProductColor, error) {
	var c models.ProductColor
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *colorRepo) ListByProduct(ctx context.Context, productID uint) ([]models.ProductColor, error) {
	var list []models.ProductColor
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *colorRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.ProductColor{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *colorRepo) SumStock(ctx context.Context, productID uint) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).
		Model(&models.ProductColor{}).
		Select("COALESCE(SUM(stock), 0)").
		Where("product_id = ?", productID).
		Scan(&sum).Error
	return sum, err
}

func (r *colorRepo) LockStock(ctx context.Context, ids []uint) (map[uint]ColorStockRow, error) {
	out := make(map[uint]ColorStockRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []ColorStockRow
	err := r.db.WithContext(ctx).
		Model(&models.ProductColor{}).
		Select("id, product_id, name, stock").
		Where("id IN ?", ids).
		Order("id ASC").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *colorRepo) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE product_colors
SET stock = stock - @q,
    updated_at = NOW(3)
WHERE id = @id
  AND stock >= @q
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
