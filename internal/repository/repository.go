package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate: нарушение UNIQUE (например, sku или email).
var ErrDuplicate = errors.New("duplicate key")

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

type Repository struct {
	DB                 *gorm.DB
	Users              UserRepo
	Categories         CategoryRepo
	Subcategories      SubcategoryRepo
	Companies          CompanyRepo
	Products           ProductRepo
	Colors             ColorRepo
	ProductImages      ProductImageRepo
	ProductColorImages ProductColorImageRepo
	Orders             OrderRepo
	OrderItems         OrderItemRepo
	Settings           SettingRepo
	SiteImages         SiteImageRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:                 db,
		Users:              NewUserRepo(db),
		Categories:         NewCategoryRepo(db),
		Subcategories:      NewSubcategoryRepo(db),
		Companies:          NewCompanyRepo(db),
		Products:           NewProductRepo(db),
		Colors:             NewColorRepo(db),
		ProductImages:      NewProductImageRepo(db),
		ProductColorImages: NewProductColorImageRepo(db),
		Orders:             NewOrderRepo(db),
		OrderItems:         NewOrderItemRepo(db),
		Settings:           NewSettingRepo(db),
		SiteImages:         NewSiteImageRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// WithTx выполняет fn в одной транзакции на весь набор репозиториев.
// Любая ошибка из fn откатывает всё.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
