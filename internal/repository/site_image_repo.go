package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type SiteImageRepo interface {
	Create(ctx context.Context, img *models.SiteImage) error
	List(ctx context.Context, section string) ([]models.SiteImage, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type siteImageRepo struct{ db *gorm.DB }

func NewSiteImageRepo(db *gorm.DB) SiteImageRepo { return &siteImageRepo{db: db} }

func (r *siteImageRepo) Create(ctx context.Context, img *models.SiteImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *siteImageRepo) List(ctx context.Context, section string) ([]models.SiteImage, error) {
	q := r.db.WithContext(ctx).Model(&models.SiteImage{})
	if section != "" {
		q = q.Where("section = ?", section)
	}
	var list []models.SiteImage
	err := q.Order("section ASC, sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *siteImageRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.SiteImage{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
