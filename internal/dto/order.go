package dto

import (
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
)

type PlaceOrderItemRequest struct {
	ProductID    uint            `json:"product_id" binding:"required"`
	ColorID      *uint           `json:"color_id" binding:"omitempty,min=1"`
	ProductName  string          `json:"product_name" binding:"omitempty,max=255"`
	ProductPrice decimal.Decimal `json:"product_price" swaggertype:"number"`
	Quantity     int             `json:"quantity" binding:"required,gt=0,max=10000"`
	Subtotal     decimal.Decimal `json:"subtotal" swaggertype:"number"`
}

type PlaceOrderRequest struct {
	CustomerName    string                  `json:"customer_name" binding:"required,max=255"`
	CustomerPhone   string                  `json:"customer_phone" binding:"required,max=64"`
	CustomerCity    string                  `json:"customer_city" binding:"required,max=128"`
	CustomerAddress string                  `json:"customer_address" binding:"required"`
	ShippingMethod  string                  `json:"shipping_method" binding:"required,oneof=standard express pickup"`
	ShippingCost    decimal.Decimal         `json:"shipping_cost" swaggertype:"number"`
	PaymentMethod   string                  `json:"payment_method" binding:"required,oneof=cash card"`
	Subtotal        decimal.Decimal         `json:"subtotal" swaggertype:"number"`
	Total           decimal.Decimal         `json:"total" swaggertype:"number"`
	Items           []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r PlaceOrderRequest) ToInput() service.PlaceOrderInput {
	items := make([]service.PlaceOrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, service.PlaceOrderItem{
			ProductID:    it.ProductID,
			ColorID:      it.ColorID,
			ProductName:  it.ProductName,
			ProductPrice: it.ProductPrice,
			Quantity:     it.Quantity,
			Subtotal:     it.Subtotal,
		})
	}
	return service.PlaceOrderInput{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerCity:    r.CustomerCity,
		CustomerAddress: r.CustomerAddress,
		ShippingMethod:  r.ShippingMethod,
		ShippingCost:    r.ShippingCost,
		PaymentMethod:   r.PaymentMethod,
		Subtotal:        r.Subtotal,
		Total:           r.Total,
		Items:           items,
	}
}

type UnavailableProduct struct {
	ProductID    uint   `json:"productId"`
	ColorID      *uint  `json:"colorId,omitempty"`
	Name         string `json:"name"`
	RequestedQty *int   `json:"requestedQty,omitempty"`
	AvailableQty *int   `json:"availableQty,omitempty"`
	Reason       string `json:"reason"`
}

// PlaceOrderResponse: отдельный конверт оформления заказа, фронт разбирает его целиком.
type PlaceOrderResponse struct {
	Success             bool                 `json:"success"`
	OrderID             uint                 `json:"orderId,omitempty"`
	Message             string               `json:"message"`
	UnavailableProducts []UnavailableProduct `json:"unavailableProducts,omitempty"`
	Error               string               `json:"error,omitempty"`
}

func NewUnavailableProducts(items []service.UnavailableItem) []UnavailableProduct {
	out := make([]UnavailableProduct, 0, len(items))
	for _, it := range items {
		req := it.RequestedQty
		out = append(out, UnavailableProduct{
			ProductID:    it.ProductID,
			ColorID:      it.ColorID,
			Name:         it.Name,
			RequestedQty: &req,
			AvailableQty: it.AvailableQty,
			Reason:       it.Reason,
		})
	}
	return out
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

type OrderListQuery struct {
	Page
	Status string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

func (q OrderListQuery) ToFilter() service.OrderListFilter {
	f := service.OrderListFilter{Limit: q.Limit, Offset: q.Offset}
	if q.Status != "" {
		st := models.OrderStatus(q.Status)
		f.Status = &st
	}
	return f
}

type OrderListResponse struct {
	Items []models.Order `json:"items"`
	Total int64          `json:"total"`
}
