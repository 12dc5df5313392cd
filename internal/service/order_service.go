package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type orderService struct {
	repo   *repository.Repository
	events EventBus
	cache  ProductCache
	log    *zap.Logger
	now    func() time.Time
}

// NewOrderService: events и cache могут быть nil.
func NewOrderService(repo *repository.Repository, events EventBus, cache ProductCache, log *zap.Logger) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &orderService{
		repo:   repo,
		events: events,
		cache:  cache,
		log:    log,
		now:    time.Now,
	}
}

// stockKey указывает держателя остатка, товар или его цвет (colorID != 0).
type stockKey struct {
	productID uint
	colorID   uint
}

type demand struct {
	key  stockKey
	name string
	qty  int
}

func validateOrderInput(in PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}
	for field, v := range map[string]string{
		"customer_name":    in.CustomerName,
		"customer_phone":   in.CustomerPhone,
		"customer_city":    in.CustomerCity,
		"customer_address": in.CustomerAddress,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidOrderInput, field)
		}
	}
	if !slices.Contains(ShippingMethods, in.ShippingMethod) {
		return fmt.Errorf("%w: unknown shipping_method %q", ErrInvalidOrderInput, in.ShippingMethod)
	}
	if !slices.Contains(PaymentMethods, in.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment_method %q", ErrInvalidOrderInput, in.PaymentMethod)
	}

	sum := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.Quantity > MaxLineQuantity {
			return fmt.Errorf("%w: product %d quantity %d", ErrQuantityInvalid, it.ProductID, it.Quantity)
		}
		if it.ProductPrice.IsNegative() {
			return ErrTotalsMismatch
		}
		if !it.ProductPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Equal(it.Subtotal) {
			return fmt.Errorf("%w: product %d subtotal", ErrTotalsMismatch, it.ProductID)
		}
		sum = sum.Add(it.Subtotal)
	}
	if in.ShippingCost.IsNegative() || !sum.Equal(in.Subtotal) || !in.Subtotal.Add(in.ShippingCost).Equal(in.Total) {
		return ErrTotalsMismatch
	}
	return nil
}

// collectDemand суммирует одинаковые позиции, сохраняя порядок первого появления.
// Сумма не должна переполнять int, иначе отрицательный спрос прошёл бы проверку остатка.
func collectDemand(items []PlaceOrderItem) ([]demand, error) {
	idx := make(map[stockKey]int, len(items))
	out := make([]demand, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d quantity %d", ErrQuantityInvalid, it.ProductID, it.Quantity)
		}
		k := stockKey{productID: it.ProductID}
		if it.ColorID != nil {
			k.colorID = *it.ColorID
		}
		if i, ok := idx[k]; ok {
			if out[i].qty > math.MaxInt-it.Quantity {
				return nil, fmt.Errorf("%w: product %d total quantity overflows", ErrQuantityInvalid, it.ProductID)
			}
			out[i].qty += it.Quantity
			continue
		}
		idx[k] = len(out)
		out = append(out, demand{key: k, name: strings.TrimSpace(it.ProductName), qty: it.Quantity})
	}
	return out, nil
}

func demandIDs(ds []demand) (productIDs, colorIDs []uint) {
	for _, d := range ds {
		if !slices.Contains(productIDs, d.key.productID) {
			productIDs = append(productIDs, d.key.productID)
		}
		if d.key.colorID != 0 && !slices.Contains(colorIDs, d.key.colorID) {
			colorIDs = append(colorIDs, d.key.colorID)
		}
	}
	slices.Sort(productIDs)
	slices.Sort(colorIDs)
	return productIDs, colorIDs
}

func checkAvailability(ds []demand, products map[uint]repository.StockRow, colors map[uint]repository.ColorStockRow) []UnavailableItem {
	var out []UnavailableItem
	for _, d := range ds {
		item := UnavailableItem{
			ProductID:    d.key.productID,
			Name:         d.name,
			RequestedQty: d.qty,
		}
		if d.key.colorID != 0 {
			cid := d.key.colorID
			item.ColorID = &cid
		}

		p, ok := products[d.key.productID]
		if !ok {
			item.Reason = ReasonNotFound
			out = append(out, item)
			continue
		}
		if item.Name == "" {
			item.Name = p.Name
		}

		stock := p.Stock
		if d.key.colorID != 0 {
			c, ok := colors[d.key.colorID]
			if !ok || c.ProductID != p.ID {
				item.Reason = ReasonNotFound
				out = append(out, item)
				continue
			}
			stock = c.Stock
		} else if p.HasColors {
			// агрегат товара с цветами списывается только через цвет
			avail := p.Stock
			item.AvailableQty = &avail
			item.Reason = ReasonColorRequired
			out = append(out, item)
			continue
		}

		if d.qty <= stock {
			continue
		}
		avail := max(stock, 0)
		item.AvailableQty = &avail
		if avail == 0 {
			item.Reason = ReasonOutOfStock
		} else {
			item.Reason = ReasonInsufficient
		}
		out = append(out, item)
	}
	return out
}

func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error) {
	if err := validateOrderInput(in); err != nil {
		return PlaceOrderResult{}, err
	}

	demands, err := collectDemand(in.Items)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	productIDs, colorIDs := demandIDs(demands)

	var (
		res   PlaceOrderResult
		order *models.Order
		items []models.OrderItem
		skus  []string
		now   = s.now().UTC()
	)

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		// сначала товары, потом цвета; внутри: по id
		products, err := tx.Products.LockStock(ctx, productIDs)
		if err != nil {
			return err
		}
		colors, err := tx.Colors.LockStock(ctx, colorIDs)
		if err != nil {
			return err
		}

		res.Unavailable = checkAvailability(demands, products, colors)
		if len(res.Unavailable) > 0 {
			return ErrItemsUnavailable
		}

		order = &models.Order{
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			CustomerCity:    strings.TrimSpace(in.CustomerCity),
			CustomerAddress: strings.TrimSpace(in.CustomerAddress),
			ShippingMethod:  in.ShippingMethod,
			ShippingCost:    in.ShippingCost,
			PaymentMethod:   in.PaymentMethod,
			Subtotal:        in.Subtotal,
			Total:           in.Total,
			Status:          models.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		items = make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			oi := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    it.ProductID,
				ColorID:      it.ColorID,
				ProductName:  strings.TrimSpace(it.ProductName),
				ProductPrice: it.ProductPrice,
				Quantity:     it.Quantity,
				Subtotal:     it.Subtotal,
				CreatedAt:    now,
			}
			if oi.ProductName == "" {
				oi.ProductName = products[it.ProductID].Name
			}
			if it.ColorID != nil {
				name := colors[*it.ColorID].Name
				oi.ColorName = &name
			}
			items = append(items, oi)
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return err
		}

		var recompute []uint
		for _, d := range demands {
			var ok bool
			if d.key.colorID != 0 {
				ok, err = tx.Colors.DecrementStock(ctx, d.key.colorID, d.qty)
				if !slices.Contains(recompute, d.key.productID) {
					recompute = append(recompute, d.key.productID)
				}
			} else {
				ok, err = tx.Products.DecrementStock(ctx, d.key.productID, d.qty)
			}
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: product %d", ErrStockConflict, d.key.productID)
			}
		}
		for _, pid := range recompute {
			if err := tx.Products.RecomputeStock(ctx, pid); err != nil {
				return err
			}
		}

		for _, id := range productIDs {
			skus = append(skus, products[id].SKU)
		}
		return nil
	})
	if errors.Is(err, ErrItemsUnavailable) {
		return res, err
	}
	if err != nil {
		return PlaceOrderResult{}, err
	}

	res.OrderID = order.ID
	order.Items = items
	s.afterPlaced(ctx, order, skus)
	return res, nil
}

// afterPlaced: побочные эффекты после коммита; ошибки только логируются.
func (s *orderService) afterPlaced(ctx context.Context, order *models.Order, skus []string) {
	if s.cache != nil {
		s.cache.InvalidateProducts(ctx, skus...)
	}
	if s.events == nil {
		return
	}

	evItems := make([]OrderItemEvent, 0, len(order.Items))
	for _, it := range order.Items {
		evItems = append(evItems, OrderItemEvent{
			ProductID: it.ProductID,
			ColorID:   it.ColorID,
			Name:      it.ProductName,
			Price:     it.ProductPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
		OrderID:        order.ID,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		CustomerCity:   order.CustomerCity,
		ShippingMethod: order.ShippingMethod,
		PaymentMethod:  order.PaymentMethod,
		Items:          evItems,
		Total:          order.Total,
		CreatedAt:      order.CreatedAt,
	})
	if err != nil {
		s.log.Warn("publish order.placed failed", zap.Uint("order_id", order.ID), zap.Error(err))
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.Orders.List(ctx, repository.OrderListFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status == status {
		return ord, nil
	}

	from := ord.Status
	ok, err := s.repo.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	if s.events != nil {
		err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:   id,
			From:      string(from),
			To:        string(status),
			ChangedAt: s.now().UTC(),
		})
		if err != nil {
			s.log.Warn("publish order.status_changed failed", zap.Uint("order_id", id), zap.Error(err))
		}
	}

	return s.GetOrder(ctx, id)
}

func (s *orderService) DeleteOrder(ctx context.Context, id uint) error {
	ok, err := s.repo.Orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return nil
}
