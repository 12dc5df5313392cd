package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

type catalogService struct {
	repo  *repository.Repository
	cache ProductCache
	log   *zap.Logger
	now   func() time.Time
}

// NewCatalogService: cache может быть nil.
func NewCatalogService(repo *repository.Repository, cache ProductCache, log *zap.Logger) CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &catalogService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

func (s *catalogService) invalidate(ctx context.Context, skus ...string) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateProducts(ctx, skus...)
}

// nullableID: 0 из патча превращается в NULL.
func nullableID(v uint) any {
	if v == 0 {
		return nil
	}
	return v
}

func (s *catalogService) checkRefs(ctx context.Context, categoryID, subcategoryID, companyID *uint) error {
	if categoryID != nil && *categoryID != 0 {
		c, err := s.repo.Categories.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCategoryNotFound
		}
	}
	if subcategoryID != nil && *subcategoryID != 0 {
		sc, err := s.repo.Subcategories.GetByID(ctx, *subcategoryID)
		if err != nil {
			return err
		}
		if sc == nil {
			return ErrSubcategoryNotFound
		}
	}
	if companyID != nil && *companyID != 0 {
		c, err := s.repo.Companies.GetByID(ctx, *companyID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCompanyNotFound
		}
	}
	return nil
}

func zeroToNil(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, ErrValidation
	}
	if in.Price.IsNegative() {
		return nil, ErrValidation
	}
	if in.Stock < 0 {
		return nil, ErrNegativeStock
	}
	status := in.Status
	if status == "" {
		status = models.ProductDraft
	}
	if !status.Valid() {
		return nil, ErrInvalidProductState
	}
	if err := s.checkRefs(ctx, in.CategoryID, in.SubcategoryID, in.CompanyID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSKUAlreadyExists
	}

	now := s.now().UTC()
	p := &models.Product{
		Name:          name,
		SKU:           sku,
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		OldPrice:      in.OldPrice,
		Stock:         in.Stock,
		CategoryID:    zeroToNil(in.CategoryID),
		SubcategoryID: zeroToNil(in.SubcategoryID),
		CompanyID:     zeroToNil(in.CompanyID),
		MainImage:     in.MainImage,
		Status:        status,
		IsFeatured:    in.IsFeatured,
		IsNew:         in.IsNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUAlreadyExists
		}
		return nil, err
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if err := s.checkRefs(ctx, patch.CategoryID, patch.SubcategoryID, patch.CompanyID); err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return nil, ErrValidation
		}
		fields["name"] = n
	}
	newSKU := p.SKU
	if patch.SKU != nil {
		newSKU = strings.TrimSpace(*patch.SKU)
		if newSKU == "" {
			return nil, ErrValidation
		}
		if newSKU != p.SKU {
			other, err := s.repo.Products.GetBySKU(ctx, newSKU)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrSKUAlreadyExists
			}
			fields["sku"] = newSKU
		}
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, ErrValidation
		}
		fields["price"] = *patch.Price
	}
	if patch.OldPrice != nil {
		fields["old_price"] = *patch.OldPrice
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, ErrNegativeStock
	}
	if patch.CategoryID != nil {
		fields["category_id"] = nullableID(*patch.CategoryID)
	}
	if patch.SubcategoryID != nil {
		fields["subcategory_id"] = nullableID(*patch.SubcategoryID)
	}
	if patch.CompanyID != nil {
		fields["company_id"] = nullableID(*patch.CompanyID)
	}
	if patch.MainImage != nil {
		if *patch.MainImage == "" {
			fields["main_image"] = nil
		} else {
			fields["main_image"] = *patch.MainImage
		}
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidProductState
		}
		fields["status"] = *patch.Status
	}
	if patch.IsFeatured != nil {
		fields["is_featured"] = *patch.IsFeatured
	}
	if patch.IsNew != nil {
		fields["is_new"] = *patch.IsNew
	}

	if len(fields) == 0 && patch.Stock == nil {
		return p, nil
	}

	updated := false
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		// та же блокировка, что у мутаций цветов: наличие цветов и запись агрегата согласованы
		row, err := lockProduct(ctx, tx, id)
		if err != nil {
			return err
		}
		if patch.Stock != nil {
			if row.HasColors {
				s.log.Debug("stock ignored: product has colors", zap.Uint("product_id", id))
			} else {
				fields["stock"] = *patch.Stock
			}
		}
		if len(fields) == 0 {
			return nil
		}
		fields["updated_at"] = s.now().UTC()
		if err := tx.Products.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrSKUAlreadyExists
			}
			return err
		}
		updated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated {
		s.invalidate(ctx, p.SKU, newSKU)
	}

	return s.GetProduct(ctx, id)
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	if s.cache != nil {
		if p, ok := s.cache.GetProduct(ctx, sku); ok {
			return p, nil
		}
	}

	p, err := s.repo.Products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != models.ProductPublished {
		return nil, ErrProductNotFound
	}

	if s.cache != nil {
		s.cache.SetProduct(ctx, p)
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, ErrInvalidProductState
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.Products.List(ctx, repository.ProductListFilter{
		CategoryID:    f.CategoryID,
		SubcategoryID: f.SubcategoryID,
		CompanyID:     f.CompanyID,
		Status:        f.Status,
		Featured:      f.Featured,
		Query:         f.Query,
		Limit:         f.Limit,
		Offset:        f.Offset,
	})
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint) error {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	s.invalidate(ctx, p.SKU)
	return nil
}
