package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settings service.SettingsService
	log      *zap.Logger
}

func NewSettingsHandler(settings service.SettingsService, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, log: log}
}

// List godoc
// @Summary Настройки сайта
// @Tags settings
// @Produce json
// @Success 200 {array} models.Setting
// @Router /settings [get]
func (h *SettingsHandler) List(c *gin.Context) {
	items, err := h.settings.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Настройка по ключу
// @Tags settings
// @Produce json
// @Param key path string true "Ключ"
// @Success 200 {object} models.Setting
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /settings/{key} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	st, err := h.settings.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Put godoc
// @Summary Сохранение настройки
// @Description Создаёт или перезаписывает значение (любой JSON)
// @Security BearerAuth
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Ключ"
// @Param setting body dto.SettingRequest true "Значение"
// @Success 200 {object} models.Setting
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /settings/{key} [put]
func (h *SettingsHandler) Put(c *gin.Context) {
	var req dto.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	st, err := h.settings.Put(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Delete godoc
// @Summary Удаление настройки
// @Security BearerAuth
// @Tags settings
// @Param key path string true "Ключ"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /settings/{key} [delete]
func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.settings.Delete(c.Request.Context(), c.Param("key")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("setting deleted"))
}
