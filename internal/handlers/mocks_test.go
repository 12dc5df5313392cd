package handlers

import (
	"context"
	"encoding/json"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/stretchr/testify/mock"
)

type mockOrders struct{ mock.Mock }

func (m *mockOrders) PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (service.PlaceOrderResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(service.PlaceOrderResult), args.Error(1)
}

func (m *mockOrders) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) ListOrders(ctx context.Context, f service.OrderListFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]models.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id uint, st models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, st)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) DeleteOrder(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// mockCatalog реализует только то, что вызывают тесты; остальное паникует на nil-интерфейсе.
type mockCatalog struct {
	service.CatalogService
	mock.Mock
}

func (m *mockCatalog) CreateProduct(ctx context.Context, in service.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockCatalog) UpdateProduct(ctx context.Context, id uint, patch service.ProductPatch) (*models.Product, error) {
	args := m.Called(ctx, id, patch)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockCatalog) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockCatalog) ListProducts(ctx context.Context, f service.ProductListFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]models.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockCatalog) CreateColor(ctx context.Context, productID uint, in service.ColorInput) (*models.ProductColor, error) {
	args := m.Called(ctx, productID, in)
	pc, _ := args.Get(0).(*models.ProductColor)
	return pc, args.Error(1)
}

func (m *mockCatalog) DeleteColor(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalog) ListSubcategories(ctx context.Context, categoryID *uint) ([]models.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	items, _ := args.Get(0).([]models.Subcategory)
	return items, args.Error(1)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.LoginResult), args.Error(1)
}

func (m *mockAuth) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockSettings struct{ mock.Mock }

func (m *mockSettings) List(ctx context.Context) ([]models.Setting, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.Setting)
	return items, args.Error(1)
}

func (m *mockSettings) Get(ctx context.Context, key string) (*models.Setting, error) {
	args := m.Called(ctx, key)
	st, _ := args.Get(0).(*models.Setting)
	return st, args.Error(1)
}

func (m *mockSettings) Put(ctx context.Context, key string, value json.RawMessage) (*models.Setting, error) {
	args := m.Called(ctx, key, value)
	st, _ := args.Get(0).(*models.Setting)
	return st, args.Error(1)
}

func (m *mockSettings) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
