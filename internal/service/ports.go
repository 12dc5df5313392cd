package service

import (
	"context"
	"time"

	"storefront/internal/models"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	UserID uint
	Role   models.Role
	Exp    time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, userID uint, role models.Role, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// ProductCache: кэш карточек товаров по SKU. nil отключает кэширование.
type ProductCache interface {
	GetProduct(ctx context.Context, sku string) (*models.Product, bool)
	SetProduct(ctx context.Context, p *models.Product)
	InvalidateProducts(ctx context.Context, skus ...string)
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}
