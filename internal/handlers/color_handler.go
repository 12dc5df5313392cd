package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ColorHandler struct {
	colors service.ColorService
	log    *zap.Logger
}

func NewColorHandler(colors service.ColorService, log *zap.Logger) *ColorHandler {
	return &ColorHandler{colors: colors, log: log}
}

// List godoc
// @Summary Цвета товара
// @Tags product-colors
// @Produce json
// @Param product_id query int true "ID товара"
// @Success 200 {array} models.ProductColor
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /product-colors [get]
func (h *ColorHandler) List(c *gin.Context) {
	pid, ok := queryID(c, "product_id")
	if !ok {
		return
	}
	if pid == nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("product_id is required", []dto.FieldError{{Field: "product_id", Message: "is required", Tag: "required"}}))
		return
	}
	items, err := h.colors.ListColors(c.Request.Context(), *pid)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Цвет по ID
// @Tags product-colors
// @Produce json
// @Param id path int true "ID цвета"
// @Success 200 {object} models.ProductColor
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /product-colors/{id} [get]
func (h *ColorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pc, err := h.colors.GetColor(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pc)
}

// Create godoc
// @Summary Добавление цвета
// @Description Остаток товара пересчитывается как сумма остатков цветов
// @Security BearerAuth
// @Tags product-colors
// @Accept json
// @Produce json
// @Param color body dto.ColorRequest true "Цвет"
// @Success 201 {object} models.ProductColor
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /product-colors [post]
func (h *ColorHandler) Create(c *gin.Context) {
	var req dto.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	if req.ProductID == 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("product_id is required", []dto.FieldError{{Field: "product_id", Message: "is required", Tag: "required"}}))
		return
	}
	pc, err := h.colors.CreateColor(c.Request.Context(), req.ProductID, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, pc)
}

// Update godoc
// @Summary Изменение цвета
// @Security BearerAuth
// @Tags product-colors
// @Accept json
// @Produce json
// @Param id path int true "ID цвета"
// @Param color body dto.ColorRequest true "Цвет"
// @Success 200 {object} models.ProductColor
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /product-colors/{id} [put]
func (h *ColorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	pc, err := h.colors.UpdateColor(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pc)
}

// Delete godoc
// @Summary Удаление цвета
// @Security BearerAuth
// @Tags product-colors
// @Produce json
// @Param id path int true "ID цвета"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /product-colors/{id} [delete]
func (h *ColorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.colors.DeleteColor(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("color deleted"))
}
