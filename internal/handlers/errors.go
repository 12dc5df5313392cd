package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var notFoundErrors = []error{
	service.ErrProductNotFound,
	service.ErrColorNotFound,
	service.ErrImageNotFound,
	service.ErrCategoryNotFound,
	service.ErrSubcategoryNotFound,
	service.ErrCompanyNotFound,
	service.ErrSettingNotFound,
	service.ErrOrderNotFound,
}

var validationErrors = []error{
	service.ErrValidation,
	service.ErrInvalidProductState,
	service.ErrNegativeStock,
	service.ErrEmptyItems,
	service.ErrQuantityInvalid,
	service.ErrInvalidOrderInput,
	service.ErrTotalsMismatch,
	service.ErrInvalidStatus,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError переводит ошибку сервиса в HTTP-ответ. Неизвестные ошибки
// логируются, клиент получает только internal_error без деталей.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case isAny(err, validationErrors):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), []dto.FieldError{}))
	case errors.Is(err, service.ErrSKUAlreadyExists), errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError(err.Error()))
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func badRequest(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("invalid request", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request", dto.FieldErrorsFrom(err)))
}

func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+name, []dto.FieldError{{Field: name, Message: "must be a positive integer"}}))
		return 0, false
	}
	return uint(v), true
}

func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+name, []dto.FieldError{{Field: name, Message: "must be a positive integer"}}))
		return nil, false
	}
	id := uint(v)
	return &id, true
}
