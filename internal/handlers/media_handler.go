package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MediaHandler struct {
	media service.MediaService
	log   *zap.Logger
}

func NewMediaHandler(media service.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{media: media, log: log}
}

func requireOwner(c *gin.Context, field string, id uint) bool {
	if id == 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(field+" is required", []dto.FieldError{{Field: field, Message: "is required", Tag: "required"}}))
		return false
	}
	return true
}

// ListProductImages godoc
// @Summary Картинки товара
// @Tags product-images
// @Produce json
// @Param product_id query int true "ID товара"
// @Success 200 {array} models.ProductImage
// @Router /product-images [get]
func (h *MediaHandler) ListProductImages(c *gin.Context) {
	pid, ok := queryID(c, "product_id")
	if !ok {
		return
	}
	if pid == nil {
		requireOwner(c, "product_id", 0)
		return
	}
	items, err := h.media.ListProductImages(c.Request.Context(), *pid)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddProductImage godoc
// @Summary Добавление картинки товара
// @Security BearerAuth
// @Tags product-images
// @Accept json
// @Produce json
// @Param image body dto.ImageRequest true "product_id, image_url, sort_order"
// @Success 201 {object} models.ProductImage
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /product-images [post]
func (h *MediaHandler) AddProductImage(c *gin.Context) {
	var req dto.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	if !requireOwner(c, "product_id", req.ProductID) {
		return
	}
	img, err := h.media.AddProductImage(c.Request.Context(), req.ProductID, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// UpdateProductImage godoc
// @Summary Изменение картинки товара
// @Security BearerAuth
// @Tags product-images
// @Accept json
// @Produce json
// @Param id path int true "ID картинки"
// @Param image body dto.ImageRequest true "image_url, sort_order"
// @Success 200 {object} models.ProductImage
// @Router /product-images/{id} [put]
func (h *MediaHandler) UpdateProductImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	img, err := h.media.UpdateProductImage(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// DeleteProductImage godoc
// @Summary Удаление картинки товара
// @Security BearerAuth
// @Tags product-images
// @Param id path int true "ID картинки"
// @Success 200 {object} dto.SuccessResponse
// @Router /product-images/{id} [delete]
func (h *MediaHandler) DeleteProductImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.media.DeleteProductImage(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("image deleted"))
}

// ListColorImages godoc
// @Summary Картинки цвета
// @Tags product-color-images
// @Produce json
// @Param color_id query int true "ID цвета"
// @Success 200 {array} models.ProductColorImage
// @Router /product-color-images [get]
func (h *MediaHandler) ListColorImages(c *gin.Context) {
	cid, ok := queryID(c, "color_id")
	if !ok {
		return
	}
	if cid == nil {
		requireOwner(c, "color_id", 0)
		return
	}
	items, err := h.media.ListColorImages(c.Request.Context(), *cid)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddColorImage godoc
// @Summary Добавление картинки цвета
// @Security BearerAuth
// @Tags product-color-images
// @Accept json
// @Produce json
// @Param image body dto.ImageRequest true "color_id, image_url, sort_order"
// @Success 201 {object} models.ProductColorImage
// @Router /product-color-images [post]
func (h *MediaHandler) AddColorImage(c *gin.Context) {
	var req dto.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	if !requireOwner(c, "color_id", req.ColorID) {
		return
	}
	img, err := h.media.AddColorImage(c.Request.Context(), req.ColorID, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// UpdateColorImage godoc
// @Summary Изменение картинки цвета
// @Security BearerAuth
// @Tags product-color-images
// @Accept json
// @Produce json
// @Param id path int true "ID картинки"
// @Param image body dto.ImageRequest true "image_url, sort_order"
// @Success 200 {object} models.ProductColorImage
// @Router /product-color-images/{id} [put]
func (h *MediaHandler) UpdateColorImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	img, err := h.media.UpdateColorImage(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// DeleteColorImage godoc
// @Summary Удаление картинки цвета
// @Security BearerAuth
// @Tags product-color-images
// @Param id path int true "ID картинки"
// @Success 200 {object} dto.SuccessResponse
// @Router /product-color-images/{id} [delete]
func (h *MediaHandler) DeleteColorImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.media.DeleteColorImage(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("image deleted"))
}

// ListSiteImages godoc
// @Summary Картинки сайта (баннеры и т.п.)
// @Tags site-images
// @Produce json
// @Param section query string false "Раздел"
// @Success 200 {array} models.SiteImage
// @Router /site-images [get]
func (h *MediaHandler) ListSiteImages(c *gin.Context) {
	items, err := h.media.ListSiteImages(c.Request.Context(), c.Query("section"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddSiteImage godoc
// @Summary Добавление картинки сайта
// @Security BearerAuth
// @Tags site-images
// @Accept json
// @Produce json
// @Param image body dto.SiteImageRequest true "Картинка"
// @Success 201 {object} models.SiteImage
// @Router /site-images [post]
func (h *MediaHandler) AddSiteImage(c *gin.Context) {
	var req dto.SiteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	img, err := h.media.AddSiteImage(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DeleteSiteImage godoc
// @Summary Удаление картинки сайта
// @Security BearerAuth
// @Tags site-images
// @Param id path int true "ID картинки"
// @Success 200 {object} dto.SuccessResponse
// @Router /site-images/{id} [delete]
func (h *MediaHandler) DeleteSiteImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.media.DeleteSiteImage(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("image deleted"))
}
