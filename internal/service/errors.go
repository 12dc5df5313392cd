package service

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")

	ErrProductNotFound     = errors.New("product not found")
	ErrColorNotFound       = errors.New("color not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrSettingNotFound     = errors.New("setting not found")
	ErrSKUAlreadyExists    = errors.New("sku already exists")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidProductState = errors.New("status must be draft or published")
	ErrNegativeStock       = errors.New("stock must be >= 0")

	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyItems        = errors.New("empty items")
	ErrQuantityInvalid   = errors.New("quantity out of range")
	ErrInvalidOrderInput = errors.New("invalid order input")
	ErrTotalsMismatch    = errors.New("order totals do not match line items")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrItemsUnavailable  = errors.New("some products are unavailable")
	ErrStockConflict     = errors.New("stock changed during checkout")
)
