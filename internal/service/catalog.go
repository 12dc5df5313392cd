package service

import (
	"context"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProductInput struct {
	Name          string
	SKU           string
	Description   string
	Price         decimal.Decimal
	OldPrice      decimal.NullDecimal
	Stock         int
	CategoryID    *uint
	SubcategoryID *uint
	CompanyID     *uint
	MainImage     *string
	Status        models.ProductStatus // пусто значит draft
	IsFeatured    bool
	IsNew         bool
}

// ProductPatch: nil значит не менять. Для ссылок 0 означает сбросить в NULL.
type ProductPatch struct {
	Name          *string
	SKU           *string
	Description   *string
	Price         *decimal.Decimal
	OldPrice      *decimal.NullDecimal
	Stock         *int // игнорируется, если у товара есть цвета
	CategoryID    *uint
	SubcategoryID *uint
	CompanyID     *uint
	MainImage     *string
	Status        *models.ProductStatus
	IsFeatured    *bool
	IsNew         *bool
}

type ProductListFilter struct {
	CategoryID    *uint
	SubcategoryID *uint
	CompanyID     *uint
	Status        *models.ProductStatus
	Featured      *bool
	Query         string
	Limit         int
	Offset        int
}

type ColorInput struct {
	Name     string
	HexCode  string
	Stock    int
	ImageURL *string
}

type CategoryInput struct {
	Name        string
	Description string
	ImageURL    *string
}

type SubcategoryInput struct {
	CategoryID uint
	Name       string
	ImageURL   *string
}

type CompanyInput struct {
	Name    string
	LogoURL *string
}

type ImageInput struct {
	ImageURL  string
	SortOrder int
}

type SiteImageInput struct {
	Section   string
	ImageURL  string
	Meta      datatypes.JSON
	SortOrder int
}

type ProductService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	// GetProductBySKU отдаёт публичную карточку, только published, с цветами и картинками.
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// ColorService: варианты товара. Любая мутация пересчитывает products.stock в той же транзакции.
type ColorService interface {
	CreateColor(ctx context.Context, productID uint, in ColorInput) (*models.ProductColor, error)
	UpdateColor(ctx context.Context, id uint, in ColorInput) (*models.ProductColor, error)
	GetColor(ctx context.Context, id uint) (*models.ProductColor, error)
	ListColors(ctx context.Context, productID uint) ([]models.ProductColor, error)
	DeleteColor(ctx context.Context, id uint) error
}

type TaxonomyService interface {
	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateSubcategory(ctx context.Context, in SubcategoryInput) (*models.Subcategory, error)
	UpdateSubcategory(ctx context.Context, id uint, in SubcategoryInput) (*models.Subcategory, error)
	GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID *uint) ([]models.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id uint) error

	CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error)
	UpdateCompany(ctx context.Context, id uint, in CompanyInput) (*models.Company, error)
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	DeleteCompany(ctx context.Context, id uint) error
}

type MediaService interface {
	AddProductImage(ctx context.Context, productID uint, in ImageInput) (*models.ProductImage, error)
	UpdateProductImage(ctx context.Context, id uint, in ImageInput) (*models.ProductImage, error)
	ListProductImages(ctx context.Context, productID uint) ([]models.ProductImage, error)
	DeleteProductImage(ctx context.Context, id uint) error

	AddColorImage(ctx context.Context, colorID uint, in ImageInput) (*models.ProductColorImage, error)
	UpdateColorImage(ctx context.Context, id uint, in ImageInput) (*models.ProductColorImage, error)
	ListColorImages(ctx context.Context, colorID uint) ([]models.ProductColorImage, error)
	DeleteColorImage(ctx context.Context, id uint) error

	AddSiteImage(ctx context.Context, in SiteImageInput) (*models.SiteImage, error)
	ListSiteImages(ctx context.Context, section string) ([]models.SiteImage, error)
	DeleteSiteImage(ctx context.Context, id uint) error
}

type CatalogService interface {
	ProductService
	ColorService
	TaxonomyService
	MediaService
}
