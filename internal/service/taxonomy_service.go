package service

import (
	"context"
	"strings"

	"storefront/internal/models"
)

func (s *catalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrValidation
	}
	now := s.now().UTC()
	c := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrValidation
	}
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	err := s.repo.Categories.UpdateFields(ctx, id, map[string]any{
		"name":        name,
		"description": strings.TrimSpace(in.Description),
		"image_url":   in.ImageURL,
		"updated_at":  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, id)
}

func (s *catalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	c, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories.List(ctx)
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	ok, err := s.repo.Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *catalogService) CreateSubcategory(ctx context.Context, in SubcategoryInput) (*models.Subcategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CategoryID == 0 {
		return nil, ErrValidation
	}
	if _, err := s.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sc := &models.Subcategory{
		CategoryID: in.CategoryID,
		Name:       name,
		ImageURL:   in.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Subcategories.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *catalogService) UpdateSubcategory(ctx context.Context, id uint, in SubcategoryInput) (*models.Subcategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CategoryID == 0 {
		return nil, ErrValidation
	}
	if _, err := s.GetSubcategory(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	err := s.repo.Subcategories.UpdateFields(ctx, id, map[string]any{
		"category_id": in.CategoryID,
		"name":        name,
		"image_url":   in.ImageURL,
		"updated_at":  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.GetSubcategory(ctx, id)
}

func (s *catalogService) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	sc, err := s.repo.Subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrSubcategoryNotFound
	}
	return sc, nil
}

func (s *catalogService) ListSubcategories(ctx context.Context, categoryID *uint) ([]models.Subcategory, error) {
	return s.repo.Subcategories.List(ctx, categoryID)
}

func (s *catalogService) DeleteSubcategory(ctx context.Context, id uint) error {
	ok, err := s.repo.Subcategories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSubcategoryNotFound
	}
	return nil
}

func (s *catalogService) CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrValidation
	}
	now := s.now().UTC()
	c := &models.Company{
		Name:      name,
		LogoURL:   in.LogoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCompany(ctx context.Context, id uint, in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrValidation
	}
	if _, err := s.GetCompany(ctx, id); err != nil {
		return nil, err
	}
	err := s.repo.Companies.UpdateFields(ctx, id, map[string]any{
		"name":       name,
		"logo_url":   in.LogoURL,
		"updated_at": s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.GetCompany(ctx, id)
}

func (s *catalogService) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	c, err := s.repo.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCompanyNotFound
	}
	return c, nil
}

func (s *catalogService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.repo.Companies.List(ctx)
}

func (s *catalogService) DeleteCompany(ctx context.Context, id uint) error {
	ok, err := s.repo.Companies.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCompanyNotFound
	}
	return nil
}
