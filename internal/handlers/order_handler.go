package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// PlaceOrder godoc
// @Summary Оформление заказа
// @Description Проверяет остатки, создаёт заказ и списывает товар одной транзакцией
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.PlaceOrderRequest true "Заказ"
// @Success 201 {object} dto.PlaceOrderResponse "Заказ создан"
// @Failure 400 {object} dto.PlaceOrderResponse "Неверные данные"
// @Failure 409 {object} dto.PlaceOrderResponse "Часть товаров недоступна"
// @Failure 500 {object} dto.PlaceOrderResponse "Ошибка базы данных"
// @Router /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid order request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.PlaceOrderResponse{
			Success: false,
			Message: "invalid order request",
			Error:   err.Error(),
		})
		return
	}

	res, err := h.orders.PlaceOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemsUnavailable):
			c.JSON(http.StatusConflict, dto.PlaceOrderResponse{
				Success:             false,
				Message:             "some products are unavailable",
				UnavailableProducts: dto.NewUnavailableProducts(res.Unavailable),
			})
		case errors.Is(err, service.ErrStockConflict):
			c.JSON(http.StatusConflict, dto.PlaceOrderResponse{
				Success: false,
				Message: "stock changed during checkout, please retry",
			})
		case isAny(err, validationErrors):
			c.JSON(http.StatusBadRequest, dto.PlaceOrderResponse{
				Success: false,
				Message: "invalid order request",
				Error:   err.Error(),
			})
		default:
			// заказ целиком откатился; исходный текст ошибки уходит клиенту
			h.log.Error("Order placement failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.PlaceOrderResponse{
				Success: false,
				Message: "failed to create order",
				Error:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{
		Success: true,
		OrderID: res.OrderID,
		Message: "order created",
	})
}

// ListOrders godoc
// @Summary Список заказов
// @Description Все заказы от новых к старым с количеством позиций
// @Security BearerAuth
// @Tags orders
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Лимит (по умолчанию 50)"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q dto.OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, h.log, err)
		return
	}
	items, total, err := h.orders.ListOrders(c.Request.Context(), q.ToFilter())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Items: items, Total: total})
}

// GetOrder godoc
// @Summary Заказ с позициями
// @Security BearerAuth
// @Tags orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} models.Order
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// UpdateOrderStatus godoc
// @Summary Смена статуса заказа
// @Security BearerAuth
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "ID заказа"
// @Param status body dto.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// DeleteOrder godoc
// @Summary Удаление заказа
// @Security BearerAuth
// @Tags orders
// @Produce json
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("order deleted"))
}
