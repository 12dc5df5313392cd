package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Role      Role      `gorm:"size:32;not null;default:'customer';index" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"size:512" json:"image_url"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"subcategories,omitempty"`
}

func (Category) TableName() string { return "categories" }

type Subcategory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	ImageURL   *string   `gorm:"size:512" json:"image_url"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Subcategory) TableName() string { return "subcategories" }

type Company struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	LogoURL   *string   `gorm:"size:512" json:"logo_url"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

type ProductStatus string

const (
	ProductDraft     ProductStatus = "draft"
	ProductPublished ProductStatus = "published"
)

func (s ProductStatus) Valid() bool {
	return s == ProductDraft || s == ProductPublished
}

// Product.Stock это агрегат, при наличии цветов равен сумме их остатков.
type Product struct {
	ID            uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string              `gorm:"size:255;not null" json:"name"`
	SKU           string              `gorm:"column:sku;size:100;not null;uniqueIndex:ux_products_sku" json:"sku"`
	Description   string              `gorm:"type:text" json:"description"`
	Price         decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	OldPrice      decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"old_price"`
	Stock         int                 `gorm:"not null;default:0" json:"stock"`
	CategoryID    *uint               `gorm:"index" json:"category_id"`
	SubcategoryID *uint               `gorm:"index" json:"subcategory_id"`
	CompanyID     *uint               `gorm:"index" json:"company_id"`
	MainImage     *string             `gorm:"size:512" json:"main_image"`
	Status        ProductStatus       `gorm:"size:16;not null;default:'draft';index" json:"status"`
	IsFeatured    bool                `gorm:"not null;default:false" json:"is_featured"`
	IsNew         bool                `gorm:"not null;default:false" json:"is_new"`
	CreatedAt     time.Time           `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"not null" json:"updated_at"`

	Colors []ProductColor `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors,omitempty"`
	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Product) TableName() string { return "products" }

type ProductColor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	HexCode   string    `gorm:"size:16" json:"hex_code"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	ImageURL  *string   `gorm:"size:512" json:"image_url"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Images []ProductColorImage `gorm:"foreignKey:ColorID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (ProductColor) TableName() string { return "product_colors" }

type ProductImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ProductImage) TableName() string { return "product_images" }

type ProductColorImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ColorID   uint      `gorm:"not null;index" json:"color_id"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ProductColorImage) TableName() string { return "product_color_images" }

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order неизменяем после создания, кроме Status.
type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName    string          `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone   string          `gorm:"size:64;not null" json:"customer_phone"`
	CustomerCity    string          `gorm:"size:128;not null" json:"customer_city"`
	CustomerAddress string          `gorm:"type:text;not null" json:"customer_address"`
	ShippingMethod  string          `gorm:"size:32;not null" json:"shipping_method"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_cost"`
	PaymentMethod   string          `gorm:"size:32;not null" json:"payment_method"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status          OrderStatus     `gorm:"size:16;not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	// ItemsCount заполняется только в списке заказов
	ItemsCount int `gorm:"->;-:migration" json:"items_count"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// OrderItem хранит копию имени и цены на момент покупки.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	ProductID    uint            `gorm:"not null;index" json:"product_id"`
	ColorID      *uint           `json:"color_id"`
	ProductName  string          `gorm:"size:255;not null" json:"product_name"`
	ColorName    *string         `gorm:"size:100" json:"color_name"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"product_price"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

type Setting struct {
	Key       string         `gorm:"column:setting_key;primaryKey;size:100" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

type SiteImage struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Section   string         `gorm:"size:64;not null;index" json:"section"`
	ImageURL  string         `gorm:"size:512;not null" json:"image_url"`
	Meta      datatypes.JSON `json:"meta"`
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (SiteImage) TableName() string { return "site_images" }

// All: порядок важен для AutoMigrate и экспорта.
func All() []any {
	return []any{
		&User{}, &Category{}, &Subcategory{}, &Company{},
		&Product{}, &ProductColor{}, &ProductImage{}, &ProductColorImage{},
		&Order{}, &OrderItem{}, &Setting{}, &SiteImage{},
	}
}
