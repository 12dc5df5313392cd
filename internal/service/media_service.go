package service

import (
	"context"
	"strings"

	"storefront/internal/models"
)

func validateImage(in ImageInput) error {
	if strings.TrimSpace(in.ImageURL) == "" {
		return ErrValidation
	}
	return nil
}

func (s *catalogService) AddProductImage(ctx context.Context, productID uint, in ImageInput) (*models.ProductImage, error) {
	if err := validateImage(in); err != nil {
		return nil, err
	}
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	img := &models.ProductImage{
		ProductID: productID,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		SortOrder: in.SortOrder,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.ProductImages.Create(ctx, img); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.SKU)
	return img, nil
}

func (s *catalogService) UpdateProductImage(ctx context.Context, id uint, in ImageInput) (*models.ProductImage, error) {
	if err := validateImage(in); err != nil {
		return nil, err
	}
	img, err := s.repo.ProductImages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	img.ImageURL = strings.TrimSpace(in.ImageURL)
	img.SortOrder = in.SortOrder
	err = s.repo.ProductImages.UpdateFields(ctx, id, map[string]any{
		"image_url":  img.ImageURL,
		"sort_order": img.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	s.invalidateProduct(ctx, img.ProductID)
	return img, nil
}

func (s *catalogService) ListProductImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	return s.repo.ProductImages.ListByProduct(ctx, productID)
}

func (s *catalogService) DeleteProductImage(ctx context.Context, id uint) error {
	img, err := s.repo.ProductImages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}
	if _, err := s.repo.ProductImages.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateProduct(ctx, img.ProductID)
	return nil
}

func (s *catalogService) AddColorImage(ctx context.Context, colorID uint, in ImageInput) (*models.ProductColorImage, error) {
	if err := validateImage(in); err != nil {
		return nil, err
	}
	c, err := s.GetColor(ctx, colorID)
	if err != nil {
		return nil, err
	}
	img := &models.ProductColorImage{
		ColorID:   colorID,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		SortOrder: in.SortOrder,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.ProductColorImages.Create(ctx, img); err != nil {
		return nil, err
	}
	s.invalidateProduct(ctx, c.ProductID)
	return img, nil
}

func (s *catalogService) UpdateColorImage(ctx context.Context, id uint, in ImageInput) (*models.ProductColorImage, error) {
	if err := validateImage(in); err != nil {
		return nil, err
	}
	img, err := s.repo.ProductColorImages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	img.ImageURL = strings.TrimSpace(in.ImageURL)
	img.SortOrder = in.SortOrder
	err = s.repo.ProductColorImages.UpdateFields(ctx, id, map[string]any{
		"image_url":  img.ImageURL,
		"sort_order": img.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	s.invalidateColor(ctx, img.ColorID)
	return img, nil
}

func (s *catalogService) ListColorImages(ctx context.Context, colorID uint) ([]models.ProductColorImage, error) {
	return s.repo.ProductColorImages.ListByColor(ctx, colorID)
}

func (s *catalogService) DeleteColorImage(ctx context.Context, id uint) error {
	img, err := s.repo.ProductColorImages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}
	if _, err := s.repo.ProductColorImages.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateColor(ctx, img.ColorID)
	return nil
}

func (s *catalogService) AddSiteImage(ctx context.Context, in SiteImageInput) (*models.SiteImage, error) {
	section := strings.TrimSpace(in.Section)
	if section == "" || strings.TrimSpace(in.ImageURL) == "" {
		return nil, ErrValidation
	}
	img := &models.SiteImage{
		Section:   section,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Meta:      in.Meta,
		SortOrder: in.SortOrder,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.SiteImages.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *catalogService) ListSiteImages(ctx context.Context, section string) ([]models.SiteImage, error) {
	return s.repo.SiteImages.List(ctx, strings.TrimSpace(section))
}

func (s *catalogService) DeleteSiteImage(ctx context.Context, id uint) error {
	ok, err := s.repo.SiteImages.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrImageNotFound
	}
	return nil
}

// invalidateProduct сбрасывает кэш карточки по id товара; ошибки чтения не критичны.
func (s *catalogService) invalidateProduct(ctx context.Context, productID uint) {
	if s.cache == nil {
		return
	}
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil || p == nil {
		return
	}
	s.cache.InvalidateProducts(ctx, p.SKU)
}

func (s *catalogService) invalidateColor(ctx context.Context, colorID uint) {
	if s.cache == nil {
		return
	}
	c, err := s.repo.Colors.GetByID(ctx, colorID)
	if err != nil || c == nil {
		return
	}
	s.invalidateProduct(ctx, c.ProductID)
}
