package service

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"
)

func validateColor(in ColorInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrValidation
	}
	if in.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// lockProduct блокирует строку товара до конца транзакции.
// Порядок "товар, потом цвет" совпадает с оформлением заказа.
func lockProduct(ctx context.Context, tx *repository.Repository, productID uint) (repository.StockRow, error) {
	rows, err := tx.Products.LockStock(ctx, []uint{productID})
	if err != nil {
		return repository.StockRow{}, err
	}
	row, ok := rows[productID]
	if !ok {
		return repository.StockRow{}, ErrProductNotFound
	}
	return row, nil
}

func (s *catalogService) CreateColor(ctx context.Context, productID uint, in ColorInput) (*models.ProductColor, error) {
	if err := validateColor(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &models.ProductColor{
		ProductID: productID,
		Name:      strings.TrimSpace(in.Name),
		HexCode:   strings.TrimSpace(in.HexCode),
		Stock:     in.Stock,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var sku string
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		row, err := lockProduct(ctx, tx, productID)
		if err != nil {
			return err
		}
		sku = row.SKU
		if err := tx.Colors.Create(ctx, c); err != nil {
			return err
		}
		return tx.Products.RecomputeStock(ctx, productID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, sku)
	return c, nil
}

func (s *catalogService) UpdateColor(ctx context.Context, id uint, in ColorInput) (*models.ProductColor, error) {
	if err := validateColor(in); err != nil {
		return nil, err
	}

	cur, err := s.repo.Colors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrColorNotFound
	}

	var sku string
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		row, err := lockProduct(ctx, tx, cur.ProductID)
		if err != nil {
			return err
		}
		sku = row.SKU
		err = tx.Colors.UpdateFields(ctx, id, map[string]any{
			"name":       strings.TrimSpace(in.Name),
			"hex_code":   strings.TrimSpace(in.HexCode),
			"stock":      in.Stock,
			"image_url":  in.ImageURL,
			"updated_at": s.now().UTC(),
		})
		if err != nil {
			return err
		}
		return tx.Products.RecomputeStock(ctx, cur.ProductID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, sku)
	return s.GetColor(ctx, id)
}

func (s *catalogService) GetColor(ctx context.Context, id uint) (*models.ProductColor, error) {
	c, err := s.repo.Colors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrColorNotFound
	}
	return c, nil
}

func (s *catalogService) ListColors(ctx context.Context, productID uint) ([]models.ProductColor, error) {
	return s.repo.Colors.ListByProduct(ctx, productID)
}

func (s *catalogService) DeleteColor(ctx context.Context, id uint) error {
	cur, err := s.repo.Colors.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrColorNotFound
	}

	var sku string
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		row, err := lockProduct(ctx, tx, cur.ProductID)
		if err != nil {
			return err
		}
		sku = row.SKU
		ok, err := tx.Colors.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrColorNotFound
		}
		// последний цвет удалён: остаток товара становится 0
		return tx.Products.RecomputeStock(ctx, cur.ProductID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, sku)
	return nil
}
