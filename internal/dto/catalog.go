package dto

import (
	"encoding/json"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CreateProductRequest struct {
	Name          string              `json:"name" binding:"required,max=255"`
	SKU           string              `json:"sku" binding:"required,max=100"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price" swaggertype:"number"`
	OldPrice      decimal.NullDecimal `json:"old_price" swaggertype:"number"`
	Stock         int                 `json:"stock" binding:"min=0"`
	CategoryID    *uint               `json:"category_id"`
	SubcategoryID *uint               `json:"subcategory_id"`
	CompanyID     *uint               `json:"company_id"`
	MainImage     *string             `json:"main_image" binding:"omitempty,max=512"`
	Status        string              `json:"status" binding:"omitempty,oneof=draft published"`
	IsFeatured    bool                `json:"is_featured"`
	IsNew         bool                `json:"is_new"`
}

func (r CreateProductRequest) ToInput() service.ProductInput {
	return service.ProductInput{
		Name:          r.Name,
		SKU:           r.SKU,
		Description:   r.Description,
		Price:         r.Price,
		OldPrice:      r.OldPrice,
		Stock:         r.Stock,
		CategoryID:    r.CategoryID,
		SubcategoryID: r.SubcategoryID,
		CompanyID:     r.CompanyID,
		MainImage:     r.MainImage,
		Status:        models.ProductStatus(r.Status),
		IsFeatured:    r.IsFeatured,
		IsNew:         r.IsNew,
	}
}

// UpdateProductRequest описывает частичное обновление, отсутствующее поле не меняется.
// Для category_id/subcategory_id/company_id значение 0 сбрасывает ссылку.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=255"`
	SKU           *string          `json:"sku" binding:"omitempty,min=1,max=100"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" swaggertype:"number"`
	OldPrice      *decimal.Decimal `json:"old_price" swaggertype:"number"`
	ClearOldPrice bool             `json:"clear_old_price"`
	Stock         *int             `json:"stock" binding:"omitempty,min=0"`
	CategoryID    *uint            `json:"category_id"`
	SubcategoryID *uint            `json:"subcategory_id"`
	CompanyID     *uint            `json:"company_id"`
	MainImage     *string          `json:"main_image" binding:"omitempty,max=512"`
	Status        *string          `json:"status" binding:"omitempty,oneof=draft published"`
	IsFeatured    *bool            `json:"is_featured"`
	IsNew         *bool            `json:"is_new"`
}

func (r UpdateProductRequest) ToPatch() service.ProductPatch {
	p := service.ProductPatch{
		Name:          r.Name,
		SKU:           r.SKU,
		Description:   r.Description,
		Price:         r.Price,
		Stock:         r.Stock,
		CategoryID:    r.CategoryID,
		SubcategoryID: r.SubcategoryID,
		CompanyID:     r.CompanyID,
		MainImage:     r.MainImage,
		IsFeatured:    r.IsFeatured,
		IsNew:         r.IsNew,
	}
	switch {
	case r.ClearOldPrice:
		p.OldPrice = &decimal.NullDecimal{}
	case r.OldPrice != nil:
		p.OldPrice = &decimal.NullDecimal{Decimal: *r.OldPrice, Valid: true}
	}
	if r.Status != nil {
		st := models.ProductStatus(*r.Status)
		p.Status = &st
	}
	return p
}

type ProductListQuery struct {
	Page
	CategoryID    *uint  `form:"category_id"`
	SubcategoryID *uint  `form:"subcategory_id"`
	CompanyID     *uint  `form:"company_id"`
	Status        string `form:"status" binding:"omitempty,oneof=draft published"`
	Featured      *bool  `form:"featured"`
	Query         string `form:"q" binding:"omitempty,max=255"`
}

// ToFilter: публичный список всегда только published, статус из запроса учитывается лишь в админке.
func (q ProductListQuery) ToFilter(admin bool) service.ProductListFilter {
	f := service.ProductListFilter{
		CategoryID:    q.CategoryID,
		SubcategoryID: q.SubcategoryID,
		CompanyID:     q.CompanyID,
		Featured:      q.Featured,
		Query:         q.Query,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
	switch {
	case !admin:
		st := models.ProductPublished
		f.Status = &st
	case q.Status != "":
		st := models.ProductStatus(q.Status)
		f.Status = &st
	}
	return f
}

type ProductListResponse struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

type ColorRequest struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name" binding:"required,max=100"`
	HexCode   string  `json:"hex_code" binding:"omitempty,max=16"`
	Stock     int     `json:"stock" binding:"min=0"`
	ImageURL  *string `json:"image_url" binding:"omitempty,max=512"`
}

func (r ColorRequest) ToInput() service.ColorInput {
	return service.ColorInput{Name: r.Name, HexCode: r.HexCode, Stock: r.Stock, ImageURL: r.ImageURL}
}

type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=512"`
}

func (r CategoryRequest) ToInput() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Description: r.Description, ImageURL: r.ImageURL}
}

type SubcategoryRequest struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	Name       string  `json:"name" binding:"required,max=255"`
	ImageURL   *string `json:"image_url" binding:"omitempty,max=512"`
}

func (r SubcategoryRequest) ToInput() service.SubcategoryInput {
	return service.SubcategoryInput{CategoryID: r.CategoryID, Name: r.Name, ImageURL: r.ImageURL}
}

type CompanyRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	LogoURL *string `json:"logo_url" binding:"omitempty,max=512"`
}

func (r CompanyRequest) ToInput() service.CompanyInput {
	return service.CompanyInput{Name: r.Name, LogoURL: r.LogoURL}
}

// ImageRequest: product_id нужен для product-images, color_id для product-color-images.
type ImageRequest struct {
	ProductID uint   `json:"product_id"`
	ColorID   uint   `json:"color_id"`
	ImageURL  string `json:"image_url" binding:"required,max=512"`
	SortOrder int    `json:"sort_order"`
}

func (r ImageRequest) ToInput() service.ImageInput {
	return service.ImageInput{ImageURL: r.ImageURL, SortOrder: r.SortOrder}
}

type SiteImageRequest struct {
	Section   string          `json:"section" binding:"required,max=64"`
	ImageURL  string          `json:"image_url" binding:"required,max=512"`
	Meta      json.RawMessage `json:"meta" swaggertype:"object"`
	SortOrder int             `json:"sort_order"`
}

func (r SiteImageRequest) ToInput() service.SiteImageInput {
	var meta datatypes.JSON
	if len(r.Meta) > 0 {
		meta = datatypes.JSON(r.Meta)
	}
	return service.SiteImageInput{Section: r.Section, ImageURL: r.ImageURL, Meta: meta, SortOrder: r.SortOrder}
}

type SettingRequest struct {
	Value json.RawMessage `json:"value" binding:"required" swaggertype:"object"`
}
