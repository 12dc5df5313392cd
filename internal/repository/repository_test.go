package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/migrate"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/testutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestMySQL(t)
	if err := migrate.MigrateStoreDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newProduct(sku string, stock int) *models.Product {
	now := time.Now().UTC()
	return &models.Product{
		Name:      "Product " + sku,
		SKU:       sku,
		Price:     decimal.RequireFromString("100.00"),
		Stock:     stock,
		Status:    models.ProductPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newColor(productID uint, name string, stock int) *models.ProductColor {
	now := time.Now().UTC()
	return &models.ProductColor{ProductID: productID, Name: name, Stock: stock, CreatedAt: now, UpdatedAt: now}
}

func TestProductRepo_CRUD(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewProductRepo(db)
	ctx := context.Background()

	p := newProduct("SKU-001", 5)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.SKU != "SKU-001" || got.Stock != 5 {
		t.Fatalf("GetByID mismatch: %+v", got)
	}
	if got.CategoryID != nil || got.IsFeatured {
		t.Fatalf("optional refs and flags must default to NULL/false: %+v", got)
	}

	bySKU, err := repo.GetBySKU(ctx, "SKU-001")
	if err != nil || bySKU == nil || bySKU.ID != p.ID {
		t.Fatalf("GetBySKU: %+v, %v", bySKU, err)
	}

	if err := repo.UpdateFields(ctx, p.ID, map[string]any{"name": "Renamed", "price": decimal.RequireFromString("120.50")}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, _ = repo.GetByID(ctx, p.ID)
	if got.Name != "Renamed" || !got.Price.Equal(decimal.RequireFromString("120.50")) {
		t.Fatalf("UpdateFields mismatch: %+v", got)
	}

	dup := newProduct("SKU-001", 1)
	if err := repo.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate sku: expected ErrDuplicate, got %v", err)
	}

	missing, err := repo.GetByID(ctx, 999999)
	if err != nil || missing != nil {
		t.Fatalf("GetByID missing: %+v, %v", missing, err)
	}

	ok, err := repo.Delete(ctx, p.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: %v %v", ok, err)
	}
	ok, _ = repo.Delete(ctx, p.ID)
	if ok {
		t.Fatalf("second Delete must report false")
	}
}

func TestProductRepo_ListOrderingAndFilters(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewProductRepo(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, sku := range []string{"A-1", "A-2", "A-3"} {
		p := newProduct(sku, 1)
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if sku == "A-2" {
			p.Status = models.ProductDraft
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", sku, err)
		}
	}

	list, total, err := repo.List(ctx, repository.ProductListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(list) != 3 || list[0].SKU != "A-3" || list[2].SKU != "A-1" {
		t.Fatalf("List must be newest first: total=%d %+v", total, list)
	}

	published := models.ProductPublished
	list, total, err = repo.List(ctx, repository.ProductListFilter{Status: &published})
	if err != nil || total != 2 || len(list) != 2 {
		t.Fatalf("List published: total=%d len=%d err=%v", total, len(list), err)
	}

	list, _, err = repo.List(ctx, repository.ProductListFilter{Query: "A-2"})
	if err != nil || len(list) != 1 || list[0].SKU != "A-2" {
		t.Fatalf("List query: %+v %v", list, err)
	}
}

func TestProductRepo_DecrementStock(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewProductRepo(db)
	ctx := context.Background()

	p := newProduct("DEC-1", 5)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := repo.DecrementStock(ctx, p.ID, 3)
	if err != nil || !ok {
		t.Fatalf("DecrementStock(3): %v %v", ok, err)
	}
	ok, err = repo.DecrementStock(ctx, p.ID, 3)
	if err != nil || ok {
		t.Fatalf("DecrementStock over stock must report false: %v %v", ok, err)
	}

	got, _ := repo.GetByID(ctx, p.ID)
	if got.Stock != 2 {
		t.Fatalf("stock = %d, want 2", got.Stock)
	}
}

func TestProductRepo_StockNeverNegativeByConstraint(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewProductRepo(db)
	ctx := context.Background()

	p := newProduct("CHK-1", 1)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.UpdateFields(ctx, p.ID, map[string]any{"stock": -1}); err == nil {
		t.Fatalf("CHECK constraint must reject negative stock")
	}
}

func TestLockStock_ReadsRowsAndColorFlag(t *testing.T) {
	db := setupDB(t)
	r := repository.New(db)
	ctx := context.Background()

	plain := newProduct("L-1", 4)
	colored := newProduct("L-2", 0)
	if err := r.Products.Create(ctx, plain); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Products.Create(ctx, colored); err != nil {
		t.Fatalf("Create: %v", err)
	}
	red := newColor(colored.ID, "red", 2)
	if err := r.Colors.Create(ctx, red); err != nil {
		t.Fatalf("Create color: %v", err)
	}

	err := r.WithTx(ctx, func(tx *repository.Repository) error {
		rows, err := tx.Products.LockStock(ctx, []uint{plain.ID, colored.ID, 424242})
		if err != nil {
			return err
		}
		if len(rows) != 2 {
			t.Errorf("LockStock rows = %d, want 2", len(rows))
		}
		if rows[plain.ID].Stock != 4 || rows[plain.ID].HasColors {
			t.Errorf("plain row: %+v", rows[plain.ID])
		}
		if !rows[colored.ID].HasColors || rows[colored.ID].SKU != "L-2" {
			t.Errorf("colored row: %+v", rows[colored.ID])
		}

		crows, err := tx.Colors.LockStock(ctx, []uint{red.ID})
		if err != nil {
			return err
		}
		if crows[red.ID].ProductID != colored.ID || crows[red.ID].Stock != 2 {
			t.Errorf("color row: %+v", crows[red.ID])
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
}

func TestRecomputeStock_SumsColors(t *testing.T) {
	db := setupDB(t)
	r := repository.New(db)
	ctx := context.Background()

	p := newProduct("AGG-1", 0)
	if err := r.Products.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, c := range []*models.ProductColor{newColor(p.ID, "red", 4), newColor(p.ID, "blue", 6)} {
		if err := r.Colors.Create(ctx, c); err != nil {
			t.Fatalf("Create color: %v", err)
		}
	}

	if err := r.Products.RecomputeStock(ctx, p.ID); err != nil {
		t.Fatalf("RecomputeStock: %v", err)
	}
	got, _ := r.Products.GetByID(ctx, p.ID)
	if got.Stock != 10 {
		t.Fatalf("stock = %d, want 10", got.Stock)
	}

	sum, err := r.Colors.SumStock(ctx, p.ID)
	if err != nil || sum != 10 {
		t.Fatalf("SumStock = %d, %v", sum, err)
	}

	ids, err := r.Products.ListColorBearingIDs(ctx)
	if err != nil || len(ids) != 1 || ids[0] != p.ID {
		t.Fatalf("ListColorBearingIDs: %v %v", ids, err)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := setupDB(t)
	r := repository.New(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := r.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Products.Create(ctx, newProduct("TX-1", 1)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx err = %v", err)
	}

	got, err := r.Products.GetBySKU(ctx, "TX-1")
	if err != nil || got != nil {
		t.Fatalf("product must be rolled back: %+v %v", got, err)
	}
}

func TestOrderRepo_ListWithItemsCount(t *testing.T) {
	db := setupDB(t)
	r := repository.New(db)
	ctx := context.Background()

	now := time.Now().UTC()
	older := &models.Order{
		CustomerName: "A", CustomerPhone: "1", CustomerCity: "C", CustomerAddress: "Addr",
		ShippingMethod: "standard", PaymentMethod: "cash",
		Subtotal: decimal.NewFromInt(10), Total: decimal.NewFromInt(10),
		Status: models.OrderStatusPending, CreatedAt: now.Add(-time.Minute), UpdatedAt: now,
	}
	newer := &models.Order{
		CustomerName: "B", CustomerPhone: "2", CustomerCity: "C", CustomerAddress: "Addr",
		ShippingMethod: "pickup", PaymentMethod: "card",
		Subtotal: decimal.NewFromInt(20), Total: decimal.NewFromInt(20),
		Status: models.OrderStatusShipped, CreatedAt: now, UpdatedAt: now,
	}
	for _, o := range []*models.Order{older, newer} {
		if err := r.Orders.Create(ctx, o); err != nil {
			t.Fatalf("Create order: %v", err)
		}
	}
	items := []models.OrderItem{
		{OrderID: older.ID, ProductID: 1, ProductName: "X", ProductPrice: decimal.NewFromInt(5), Quantity: 1, Subtotal: decimal.NewFromInt(5), CreatedAt: now},
		{OrderID: older.ID, ProductID: 2, ProductName: "Y", ProductPrice: decimal.NewFromInt(5), Quantity: 1, Subtotal: decimal.NewFromInt(5), CreatedAt: now},
	}
	if err := r.OrderItems.BulkCreate(ctx, items); err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	list, total, err := r.Orders.List(ctx, repository.OrderListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || list[0].ID != newer.ID || list[1].ItemsCount != 2 || list[0].ItemsCount != 0 {
		t.Fatalf("List mismatch: total=%d %+v", total, list)
	}

	shipped := models.OrderStatusShipped
	list, total, _ = r.Orders.List(ctx, repository.OrderListFilter{Status: &shipped})
	if total != 1 || list[0].ID != newer.ID {
		t.Fatalf("List by status mismatch: %+v", list)
	}

	ok, err := r.Orders.UpdateStatus(ctx, older.ID, models.OrderStatusProcessing)
	if err != nil || !ok {
		t.Fatalf("UpdateStatus: %v %v", ok, err)
	}

	ok, err = r.Orders.Delete(ctx, older.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: %v %v", ok, err)
	}
	cnt, _ := r.OrderItems.Count(ctx)
	if cnt != 0 {
		t.Fatalf("order items must cascade, left %d", cnt)
	}
}

func TestSettingRepo_Upsert(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewSettingRepo(db)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, "shipping", datatypes.JSON(`{"standard":300}`)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, "shipping", datatypes.JSON(`{"standard":350}`)); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}

	got, err := repo.Get(ctx, "shipping")
	if err != nil || got == nil {
		t.Fatalf("Get: %+v %v", got, err)
	}
	if string(got.Value) != `{"standard": 350}` && string(got.Value) != `{"standard":350}` {
		t.Fatalf("value = %s", got.Value)
	}

	list, _ := repo.List(ctx)
	if len(list) != 1 {
		t.Fatalf("List len = %d", len(list))
	}

	ok, err := repo.Delete(ctx, "shipping")
	if err != nil || !ok {
		t.Fatalf("Delete: %v %v", ok, err)
	}
	got, _ = repo.Get(ctx, "shipping")
	if got != nil {
		t.Fatalf("setting must be deleted")
	}
}

func TestUserRepo_EmailCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewUserRepo(db)
	ctx := context.Background()

	now := time.Now().UTC()
	u := &models.User{Name: "Admin", Email: "admin@shop.local", Password: "hash", Role: models.RoleAdmin, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "ADMIN@shop.local")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("GetByEmail: %+v %v", got, err)
	}

	dup := &models.User{Name: "X", Email: "admin@shop.local", Password: "h", Role: models.RoleCustomer, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate email: %v", err)
	}
}
