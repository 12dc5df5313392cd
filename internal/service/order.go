package service

import (
	"context"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// Причины недоступности позиции
const (
	ReasonNotFound      = "product not found"
	ReasonOutOfStock    = "out of stock"
	ReasonInsufficient  = "insufficient stock"
	ReasonColorRequired = "color selection required"
)

// MaxLineQuantity ограничивает количество в одной позиции заказа.
const MaxLineQuantity = 10000

var (
	ShippingMethods = []string{"standard", "express", "pickup"}
	PaymentMethods  = []string{"cash", "card"}
)

type PlaceOrderItem struct {
	ProductID    uint
	ColorID      *uint // если задан, остаток берётся с цвета
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int
	Subtotal     decimal.Decimal
}

type PlaceOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerCity    string
	CustomerAddress string
	ShippingMethod  string
	ShippingCost    decimal.Decimal
	PaymentMethod   string
	Subtotal        decimal.Decimal
	Total           decimal.Decimal
	Items           []PlaceOrderItem
}

type UnavailableItem struct {
	ProductID    uint
	ColorID      *uint
	Name         string
	RequestedQty int
	AvailableQty *int // nil, если товара нет
	Reason       string
}

type PlaceOrderResult struct {
	OrderID     uint
	Unavailable []UnavailableItem
}

type OrderListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderService interface {
	// PlaceOrder создаёт заказ и списывает остатки одной транзакцией.
	// При нехватке товара возвращает ErrItemsUnavailable и заполненный Unavailable.
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}
