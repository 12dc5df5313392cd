package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *categoryRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *categoryRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

type SubcategoryRepo interface {
	Create(ctx context.Context, s *models.Subcategory) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.Subcategory, error)
	List(ctx context.Context, categoryID *uint) ([]models.Subcategory, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type subcategoryRepo struct{ db *gorm.DB }

func NewSubcategoryRepo(db *gorm.DB) SubcategoryRepo { return &subcategoryRepo{db: db} }

func (r *subcategoryRepo) Create(ctx context.Context, s *models.Subcategory) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subcategoryRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Subcategory{}).Where("id = ?", id).Updates(fields).Error
}

func (r *subcategoryRepo) GetByID(ctx context.Context, id uint) (*models.Subcategory, error) {
	var s models.Subcategory
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *subcategoryRepo) List(ctx context.Context, categoryID *uint) ([]models.Subcategory, error) {
	q := r.db.WithContext(ctx).Model(&models.Subcategory{})
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var list []models.Subcategory
	err := q.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *subcategoryRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Subcategory{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

type CompanyRepo interface {
	Create(ctx context.Context, c *models.Company) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type companyRepo struct{ db *gorm.DB }

func NewCompanyRepo(db *gorm.DB) CompanyRepo { return &companyRepo{db: db} }

func (r *companyRepo) Create(ctx context.Context, c *models.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *companyRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Company{}).Where("id = ?", id).Updates(fields).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *companyRepo) List(ctx context.Context) ([]models.Company, error) {
	var list []models.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *companyRepo) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Company{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
