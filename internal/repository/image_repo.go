package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type ProductImageRepo interface {
	Create(ctx context.Context, img *models.ProductImage) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.ProductImage, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.ProductImage, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type productImageRepo struct{ db *gorm.DB }

func NewProductImageRepo(db *gorm.DB) ProductImageRepo { return &productImageRepo{db: db} }

func (r *productImageRepo) Create(ctx context.Context, img *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *productImageRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ProductImage{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productImageRepo) GetByID(ctx context.Context, id uint) (*models.ProductImage, error) {
	var img models.ProductImage
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &img, err
}

func (r *productImageRepo) ListByProduct(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	var list []models.ProductImage
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *productImageRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.ProductImage{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

type ProductColorImageRepo interface {
	Create(ctx context.Context, img *models.ProductColorImage) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.ProductColorImage, error)
	ListByColor(ctx context.Context, colorID uint) ([]models.ProductColorImage, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type productColorImageRepo struct{ db *gorm.DB }

func NewProductColorImageRepo(db *gorm.DB) ProductColorImageRepo {
	return &productColorImageRepo{db: db}
}

func (r *productColorImageRepo) Create(ctx context.Context, img *models.ProductColorImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *productColorImageRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ProductColorImage{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productColorImageRepo) GetByID(ctx context.Context, id uint) (*models.ProductColorImage, error) {
	var img models.ProductColorImage
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &img, err
}

func (r *productColorImageRepo) ListByColor(ctx context.Context, colorID uint) ([]models.ProductColorImage, error) {
	var list []models.ProductColorImage
	err := r.db.WithContext(ctx).Where("color_id = ?", colorID).Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *productColorImageRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.ProductColorImage{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
