package handlers

import (
	"net/http"
	"strings"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	products service.ProductService
	log      *zap.Logger
}

func NewProductHandler(products service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: log}
}

// ListPublished godoc
// @Summary Каталог товаров
// @Description Только опубликованные товары, новые первыми
// @Tags products
// @Produce json
// @Param category_id query int false "Категория"
// @Param subcategory_id query int false "Подкатегория"
// @Param company_id query int false "Производитель"
// @Param featured query bool false "Только избранные"
// @Param q query string false "Поиск по названию или SKU"
// @Param limit query int false "Лимит (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.ProductListResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListPublished(c *gin.Context) {
	h.list(c, false)
}

// ListAll godoc
// @Summary Все товары (админка)
// @Security BearerAuth
// @Tags products
// @Produce json
// @Param status query string false "draft или published"
// @Param category_id query int false "Категория"
// @Param q query string false "Поиск"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.ProductListResponse
// @Router /admin/products [get]
func (h *ProductHandler) ListAll(c *gin.Context) {
	h.list(c, true)
}

func (h *ProductHandler) list(c *gin.Context, admin bool) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, h.log, err)
		return
	}
	items, total, err := h.products.ListProducts(c.Request.Context(), q.ToFilter(admin))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{Items: items, Total: total})
}

// GetBySKU godoc
// @Summary Карточка товара
// @Description Опубликованный товар с цветами и картинками
// @Tags products
// @Produce json
// @Param sku path string true "SKU"
// @Success 200 {object} models.Product
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /products/{sku} [get]
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	p, err := h.products.GetProductBySKU(c.Request.Context(), sku)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetByID godoc
// @Summary Товар по ID (админка)
// @Security BearerAuth
// @Tags products
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} models.Product
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /admin/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary Создание товара
// @Security BearerAuth
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Товар"
// @Success 201 {object} models.Product
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "SKU занят"
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	p, err := h.products.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update godoc
// @Summary Изменение товара
// @Description Частичное обновление. stock игнорируется, если у товара есть цвета
// @Security BearerAuth
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "ID товара"
// @Param product body dto.UpdateProductRequest true "Изменяемые поля"
// @Success 200 {object} models.Product
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	p, err := h.products.UpdateProduct(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete godoc
// @Summary Удаление товара
// @Security BearerAuth
// @Tags products
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("product deleted"))
}
