package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductListFilter struct {
	CategoryID    *uint
	SubcategoryID *uint
	CompanyID     *uint
	Status        *models.ProductStatus
	Featured      *bool
	Query         string // по name/sku
	Limit         int
	Offset        int
}

// StockRow: строка остатка, прочитанная под блокировкой.
type StockRow struct {
	ID        uint
	Name      string
	SKU       string
	Stock     int
	HasColors bool
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	Delete(ctx context.Context, id uint) (bool, error)

	// LockStock читает остатки с SELECT ... FOR UPDATE; имеет смысл только внутри WithTx.
	LockStock(ctx context.Context, ids []uint) (map[uint]StockRow, error)
	// DecrementStock: stock -= qty, если stock >= qty. false, если остатка не хватило.
	DecrementStock(ctx context.Context, id uint, qty int) (bool, error)
	// RecomputeStock перезаписывает stock суммой остатков цветов.
	RecomputeStock(ctx context.Context, id uint) error
	ListColorBearingIDs(ctx context.Context) ([]uint, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *productRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error)
}

func (r *productRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Colors.Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		First(&p, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		q = q.Where("subcategory_id = ?", *f.SubcategoryID)
	}
	if f.CompanyID != nil {
		q = q.Where("company_id = ?", *f.CompanyID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where("name LIKE ? OR sku LIKE ?", "%"+s+"%", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Product
	if err := q.Order("created_at DESC, id DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *productRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) LockStock(ctx context.Context, ids []uint) (map[uint]StockRow, error) {
	out := make(map[uint]StockRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []StockRow
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id, name, sku, stock, EXISTS(SELECT 1 FROM product_colors pc WHERE pc.product_id = products.id) AS has_colors").
		Where("id IN ?", ids).
		Order("id ASC"). // один порядок блокировок для всех транзакций
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

func (r *productRepo) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
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

func (r *productRepo) RecomputeStock(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock = (SELECT COALESCE(SUM(pc.stock), 0) FROM product_colors pc WHERE pc.product_id = @id),
    updated_at = NOW(3)
WHERE id = @id
`, map[string]any{"id": id}).Error
}

func (r *productRepo) ListColorBearingIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.ProductColor{}).Distinct().Order("product_id ASC").Pluck("product_id", &ids).Error
	return ids, err
}
