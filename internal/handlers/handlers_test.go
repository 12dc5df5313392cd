package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true
	dto.UseJSONFieldNames()
	return gin.New()
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validOrder = `{
	"customer_name": "Ivan",
	"customer_phone": "+7 900 000 00 00",
	"customer_city": "Kazan",
	"customer_address": "Baumana 1",
	"shipping_method": "standard",
	"shipping_cost": 0,
	"payment_method": "cash",
	"subtotal": "30.00",
	"total": "30.00",
	"items": [{"product_id": 7, "product_name": "Mug", "product_price": 10, "quantity": 3, "subtotal": 30}]
}`

func orderEngine(m *mockOrders) *gin.Engine {
	r := newEngine()
	h := NewOrderHandler(m, zap.NewNop())
	r.POST("/orders", h.PlaceOrder)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/:id/status", h.UpdateOrderStatus)
	r.DELETE("/orders/:id", h.DeleteOrder)
	return r
}

func decodeOrderResp(t *testing.T, w *httptest.ResponseRecorder) dto.PlaceOrderResponse {
	t.Helper()
	var resp dto.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPlaceOrder_Created(t *testing.T) {
	m := new(mockOrders)
	m.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in service.PlaceOrderInput) bool {
		return len(in.Items) == 1 &&
			in.Items[0].ProductID == 7 &&
			in.Items[0].Quantity == 3 &&
			in.Items[0].ProductPrice.Equal(decimal.NewFromInt(10)) &&
			in.Total.Equal(decimal.NewFromInt(30))
	})).Return(service.PlaceOrderResult{OrderID: 42}, nil)

	w := do(orderEngine(m), http.MethodPost, "/orders", validOrder)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeOrderResp(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, uint(42), resp.OrderID)
	m.AssertExpectations(t)
}

func TestPlaceOrder_Unavailable(t *testing.T) {
	zero, two := 0, 2
	m := new(mockOrders)
	m.On("PlaceOrder", mock.Anything, mock.Anything).Return(service.PlaceOrderResult{
		Unavailable: []service.UnavailableItem{
			{ProductID: 7, Name: "Mug", RequestedQty: 3, AvailableQty: &zero, Reason: service.ReasonOutOfStock},
			{ProductID: 8, Name: "Cup", RequestedQty: 5, AvailableQty: &two, Reason: service.ReasonInsufficient},
			{ProductID: 9, Name: "Gone", RequestedQty: 1, Reason: service.ReasonNotFound},
		},
	}, service.ErrItemsUnavailable)

	w := do(orderEngine(m), http.MethodPost, "/orders", validOrder)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeOrderResp(t, w)
	assert.False(t, resp.Success)
	assert.Zero(t, resp.OrderID)
	require.Len(t, resp.UnavailableProducts, 3)
	assert.Equal(t, "out of stock", resp.UnavailableProducts[0].Reason)
	require.NotNil(t, resp.UnavailableProducts[0].AvailableQty)
	assert.Equal(t, 0, *resp.UnavailableProducts[0].AvailableQty)
	assert.Equal(t, 2, *resp.UnavailableProducts[1].AvailableQty)
	assert.Nil(t, resp.UnavailableProducts[2].AvailableQty)
	assert.Equal(t, 1, *resp.UnavailableProducts[2].RequestedQty)
}

func TestPlaceOrder_DatabaseErrorForwardsMessage(t *testing.T) {
	m := new(mockOrders)
	m.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(service.PlaceOrderResult{}, errors.New("Error 1205: Lock wait timeout exceeded"))

	w := do(orderEngine(m), http.MethodPost, "/orders", validOrder)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeOrderResp(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Error 1205: Lock wait timeout exceeded", resp.Error)
}

func TestPlaceOrder_RejectsBadBodies(t *testing.T) {
	cases := map[string]string{
		"empty items":     `{"customer_name":"a","customer_phone":"b","customer_city":"c","customer_address":"d","shipping_method":"standard","payment_method":"cash","items":[]}`,
		"zero quantity":   `{"customer_name":"a","customer_phone":"b","customer_city":"c","customer_address":"d","shipping_method":"standard","payment_method":"cash","items":[{"product_id":1,"product_name":"x","quantity":0}]}`,
		"unknown method":  `{"customer_name":"a","customer_phone":"b","customer_city":"c","customer_address":"d","shipping_method":"teleport","payment_method":"cash","items":[{"product_id":1,"product_name":"x","quantity":1}]}`,
		"unknown field":   `{"customer_name":"a","customer_phone":"b","customer_city":"c","customer_address":"d","shipping_method":"standard","payment_method":"cash","coupon":"FREE","items":[{"product_id":1,"product_name":"x","quantity":1}]}`,
		"huge quantity":   `{"customer_name":"a","customer_phone":"b","customer_city":"c","customer_address":"d","shipping_method":"standard","payment_method":"cash","items":[{"product_id":1,"quantity":4611686018427387904},{"product_id":1,"quantity":4611686018427387899}]}`,
		"malformed json":  `{"customer_name":`,
		"missing address": `{"customer_name":"a","customer_phone":"b","customer_city":"c","shipping_method":"standard","payment_method":"cash","items":[{"product_id":1,"product_name":"x","quantity":1}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			m := new(mockOrders)
			w := do(orderEngine(m), http.MethodPost, "/orders", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeOrderResp(t, w)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			m.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestPlaceOrder_ServiceValidation(t *testing.T) {
	m := new(mockOrders)
	m.On("PlaceOrder", mock.Anything, mock.Anything).Return(service.PlaceOrderResult{}, service.ErrTotalsMismatch)

	w := do(orderEngine(m), http.MethodPost, "/orders", validOrder)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrTotalsMismatch.Error(), decodeOrderResp(t, w).Error)
}

func TestGetOrder(t *testing.T) {
	m := new(mockOrders)
	m.On("GetOrder", mock.Anything, uint(5)).Return(&models.Order{ID: 5, Status: models.OrderStatusPending}, nil)
	m.On("GetOrder", mock.Anything, uint(6)).Return(nil, service.ErrOrderNotFound)
	r := orderEngine(m)

	w := do(r, http.MethodGet, "/orders/5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	w = do(r, http.MethodGet, "/orders/6", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)

	w = do(r, http.MethodGet, "/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders_StatusFilter(t *testing.T) {
	st := models.OrderStatusShipped
	m := new(mockOrders)
	m.On("ListOrders", mock.Anything, service.OrderListFilter{Status: &st, Limit: 10}).
		Return([]models.Order{{ID: 1, Status: st, ItemsCount: 2}}, int64(1), nil)
	r := orderEngine(m)

	w := do(r, http.MethodGet, "/orders?status=shipped&limit=10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items_count":2`)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = do(r, http.MethodGet, "/orders?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"status"`)
}

func TestUpdateOrderStatus(t *testing.T) {
	m := new(mockOrders)
	m.On("UpdateStatus", mock.Anything, uint(3), models.OrderStatusDelivered).
		Return(&models.Order{ID: 3, Status: models.OrderStatusDelivered}, nil)
	r := orderEngine(m)

	w := do(r, http.MethodPut, "/orders/3/status", `{"status":"delivered"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/orders/3/status", `{"status":"refunded"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestDeleteOrder(t *testing.T) {
	m := new(mockOrders)
	m.On("DeleteOrder", mock.Anything, uint(3)).Return(nil)
	m.On("DeleteOrder", mock.Anything, uint(4)).Return(service.ErrOrderNotFound)
	r := orderEngine(m)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/orders/3", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/orders/4", "").Code)
}

func productEngine(m *mockCatalog) *gin.Engine {
	r := newEngine()
	h := NewProductHandler(m, zap.NewNop())
	r.GET("/products", h.ListPublished)
	r.GET("/products/:sku", h.GetBySKU)
	r.GET("/admin/products", h.ListAll)
	r.POST("/products", h.Create)
	r.PUT("/products/:id", h.Update)
	return r
}

func TestListProducts_PublicIsPublishedOnly(t *testing.T) {
	m := new(mockCatalog)
	m.On("ListProducts", mock.Anything, mock.MatchedBy(func(f service.ProductListFilter) bool {
		return f.Status != nil && *f.Status == models.ProductPublished
	})).Return([]models.Product{{ID: 1, SKU: "A-1"}}, int64(1), nil).Once()
	m.On("ListProducts", mock.Anything, mock.MatchedBy(func(f service.ProductListFilter) bool {
		return f.Status != nil && *f.Status == models.ProductDraft
	})).Return([]models.Product{}, int64(0), nil).Once()
	r := productEngine(m)

	w := do(r, http.MethodGet, "/products?status=draft", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sku":"A-1"`)

	w = do(r, http.MethodGet, "/admin/products?status=draft", "")
	assert.Equal(t, http.StatusOK, w.Code)
	m.AssertExpectations(t)
}

func TestGetProductBySKU_NotFound(t *testing.T) {
	m := new(mockCatalog)
	m.On("GetProductBySKU", mock.Anything, "NOPE").Return(nil, service.ErrProductNotFound)

	w := do(productEngine(m), http.MethodGet, "/products/NOPE", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct(t *testing.T) {
	m := new(mockCatalog)
	m.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in service.ProductInput) bool {
		return in.SKU == "A-1" && in.CategoryID == nil && !in.IsFeatured && in.Price.Equal(decimal.RequireFromString("9.99"))
	})).Return(&models.Product{ID: 1, SKU: "A-1"}, nil).Once()
	m.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, service.ErrSKUAlreadyExists).Once()
	r := productEngine(m)

	w := do(r, http.MethodPost, "/products", `{"name":"Mug","sku":"A-1","price":"9.99"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/products", `{"name":"Mug","sku":"A-1","price":"9.99"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"conflict"`)

	w = do(r, http.MethodPost, "/products", `{"name":"Mug","sku":"A-2","stock":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"stock"`)
}

func TestUpdateProduct_Patch(t *testing.T) {
	m := new(mockCatalog)
	m.On("UpdateProduct", mock.Anything, uint(9), mock.MatchedBy(func(p service.ProductPatch) bool {
		return p.Name == nil &&
			p.OldPrice != nil && !p.OldPrice.Valid &&
			p.CategoryID != nil && *p.CategoryID == 0 &&
			p.Status != nil && *p.Status == models.ProductPublished
	})).Return(&models.Product{ID: 9}, nil)

	w := do(productEngine(m), http.MethodPut, "/products/9", `{"clear_old_price":true,"category_id":0,"status":"published"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	m.AssertExpectations(t)
}

func TestColorHandler(t *testing.T) {
	m := new(mockCatalog)
	m.On("CreateColor", mock.Anything, uint(2), service.ColorInput{Name: "Red", HexCode: "#f00", Stock: 4}).
		Return(&models.ProductColor{ID: 1, ProductID: 2, Name: "Red", Stock: 4}, nil)
	m.On("DeleteColor", mock.Anything, uint(1)).Return(nil)
	m.On("DeleteColor", mock.Anything, uint(2)).Return(service.ErrColorNotFound)

	r := newEngine()
	h := NewColorHandler(m, zap.NewNop())
	r.POST("/product-colors", h.Create)
	r.DELETE("/product-colors/:id", h.Delete)

	w := do(r, http.MethodPost, "/product-colors", `{"product_id":2,"name":"Red","hex_code":"#f00","stock":4}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/product-colors", `{"name":"Red","stock":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "product_id")

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/product-colors/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/product-colors/2", "").Code)
}

func TestListSubcategories_CategoryFilter(t *testing.T) {
	m := new(mockCatalog)
	m.On("ListSubcategories", mock.Anything, mock.MatchedBy(func(id *uint) bool { return id != nil && *id == 3 })).
		Return([]models.Subcategory{{ID: 1, CategoryID: 3, Name: "Mugs"}}, nil)

	r := newEngine()
	h := NewTaxonomyHandler(m, zap.NewNop())
	r.GET("/subcategories", h.ListSubcategories)

	w := do(r, http.MethodGet, "/subcategories?category_id=3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Mugs"`)

	w = do(r, http.MethodGet, "/subcategories?category_id=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func authEngine(m *mockAuth) *gin.Engine {
	r := newEngine()
	h := NewAuthHandler(m, zap.NewNop())
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func TestRegister(t *testing.T) {
	m := new(mockAuth)
	m.On("Register", mock.Anything, "Ann", "ann@example.com", "password1").
		Return(&models.User{ID: 1, Name: "Ann", Email: "ann@example.com", Role: models.RoleCustomer, Password: "hash"}, nil).Once()
	m.On("Register", mock.Anything, "Ann", "ann@example.com", "password1").
		Return(nil, service.ErrEmailExists).Once()
	r := authEngine(m)

	body := `{"name":"Ann","email":"ann@example.com","password":"password1"}`
	w := do(r, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
	assert.Contains(t, w.Body.String(), `"role":"customer"`)

	w = do(r, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var verr dto.BaseError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verr))
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Tag
	}
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "min", fields["password"])
}

func TestLogin(t *testing.T) {
	m := new(mockAuth)
	m.On("Login", mock.Anything, "ann@example.com", "password1").Return(service.LoginResult{
		User:            &models.User{ID: 1, Email: "ann@example.com", Role: models.RoleAdmin},
		AccessToken:     "tok",
		AccessExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	m.On("Login", mock.Anything, "ann@example.com", "wrong").Return(service.LoginResult{}, service.ErrInvalidCredentials)
	r := authEngine(m)

	w := do(r, http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.AccessToken)
	assert.InDelta(t, 3600, resp.AccessExpiresIn, 5)

	w = do(r, http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSettingsPut(t *testing.T) {
	m := new(mockSettings)
	m.On("Put", mock.Anything, "shop", json.RawMessage(`{"phone":"123"}`)).
		Return(&models.Setting{Key: "shop", Value: []byte(`{"phone":"123"}`)}, nil)
	m.On("Get", mock.Anything, "missing").Return(nil, service.ErrSettingNotFound)

	r := newEngine()
	h := NewSettingsHandler(m, zap.NewNop())
	r.PUT("/settings/:key", h.Put)
	r.GET("/settings/:key", h.Get)

	w := do(r, http.MethodPut, "/settings/shop", `{"value":{"phone":"123"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phone":"123"`)

	w = do(r, http.MethodPut, "/settings/shop", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/settings/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type pingFunc func() error

func (f pingFunc) Ping(_ context.Context) error { return f() }

func TestHealth(t *testing.T) {
	r := newEngine()
	ok := NewHealthHandler(map[string]Pinger{"mysql": pingFunc(func() error { return nil }), "redis": nil}, zap.NewNop())
	r.GET("/health", ok.Health)
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","services":{"mysql":"up"}}`, w.Body.String())

	r = newEngine()
	down := NewHealthHandler(map[string]Pinger{"mysql": pingFunc(func() error { return errors.New("refused") })}, zap.NewNop())
	r.GET("/health", down.Health)
	w = do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"mysql":"down"`)
}
