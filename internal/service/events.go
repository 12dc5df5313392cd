package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderItemEvent struct {
	ProductID uint            `json:"product_id"`
	ColorID   *uint           `json:"color_id,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderPlacedEvent struct {
	OrderID        uint             `json:"order_id"`
	CustomerName   string           `json:"customer_name"`
	CustomerPhone  string           `json:"customer_phone"`
	CustomerCity   string           `json:"customer_city"`
	ShippingMethod string           `json:"shipping_method"`
	PaymentMethod  string           `json:"payment_method"`
	Items          []OrderItemEvent `json:"items"`
	Total          decimal.Decimal  `json:"total"`
	CreatedAt      time.Time        `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint      `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}
