package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"storefront/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultBatchSize = 200

// Dump: полный снимок данных магазина для json-экспорта.
type Dump struct {
	ExportedAt         time.Time                  `json:"exported_at"`
	Users              []models.User              `json:"users"`
	Categories         []models.Category          `json:"categories"`
	Subcategories      []models.Subcategory       `json:"subcategories"`
	Companies          []models.Company           `json:"companies"`
	Products           []models.Product           `json:"products"`
	ProductColors      []models.ProductColor      `json:"product_colors"`
	ProductImages      []models.ProductImage      `json:"product_images"`
	ProductColorImages []models.ProductColorImage `json:"product_color_images"`
	Orders             []models.Order             `json:"orders"`
	OrderItems         []models.OrderItem         `json:"order_items"`
	Settings           []models.Setting           `json:"settings"`
	SiteImages         []models.SiteImage         `json:"site_images"`
}

type Exporter struct {
	db        *gorm.DB
	log       *zap.Logger
	batchSize int
	now       func() time.Time
}

func NewExporter(db *gorm.DB, log *zap.Logger) *Exporter {
	return &Exporter{db: db, log: log, batchSize: defaultBatchSize, now: time.Now}
}

func findAll[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	var rows []T
	err := db.WithContext(ctx).Order(order).Find(&rows).Error
	return rows, err
}

// ExportJSON пишет все таблицы одним JSON-документом. Хэши паролей не попадают в вывод.
func (e *Exporter) ExportJSON(ctx context.Context, w io.Writer) error {
	d := Dump{ExportedAt: e.now().UTC()}
	var err error

	if d.Users, err = findAll[models.User](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.Categories, err = findAll[models.Category](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.Subcategories, err = findAll[models.Subcategory](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.Companies, err = findAll[models.Company](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.Products, err = findAll[models.Product](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.ProductColors, err = findAll[models.ProductColor](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.ProductImages, err = findAll[models.ProductImage](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.ProductColorImages, err = findAll[models.ProductColorImage](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.Orders, err = findAll[models.Order](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.OrderItems, err = findAll[models.OrderItem](ctx, e.db, "id"); err != nil {
		return err
	}
	if d.Settings, err = findAll[models.Setting](ctx, e.db, "setting_key"); err != nil {
		return err
	}
	if d.SiteImages, err = findAll[models.SiteImage](ctx, e.db, "id"); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	e.log.Info("JSON-экспорт завершён",
		zap.Int("products", len(d.Products)),
		zap.Int("orders", len(d.Orders)),
	)
	return nil
}

// dumpTable пишет INSERT-ы пачками; SQL строит диалект gorm в режиме DryRun.
func dumpTable[T any](ctx context.Context, db *gorm.DB, w io.Writer, batchSize int) (int, error) {
	var (
		batch []T
		total int
	)
	res := db.WithContext(ctx).FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		stmt := db.ToSQL(func(dry *gorm.DB) *gorm.DB {
			return dry.Omit(clause.Associations).Create(&batch)
		})
		if _, err := io.WriteString(w, stmt+";\n"); err != nil {
			return err
		}
		total += len(batch)
		return nil
	})
	return total, res.Error
}

// ExportSQL пишет дамп данных в виде INSERT-выражений MySQL. Схему создаёт cmd/migrate.
func (e *Exporter) ExportSQL(ctx context.Context, w io.Writer) error {
	header := fmt.Sprintf("-- storefront data dump %s\nSET FOREIGN_KEY_CHECKS=0;\n", e.now().UTC().Format(time.RFC3339))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	steps := []struct {
		table string
		dump  func() (int, error)
	}{
		{"users", func() (int, error) { return dumpTable[models.User](ctx, e.db, w, e.batchSize) }},
		{"categories", func() (int, error) { return dumpTable[models.Category](ctx, e.db, w, e.batchSize) }},
		{"subcategories", func() (int, error) { return dumpTable[models.Subcategory](ctx, e.db, w, e.batchSize) }},
		{"companies", func() (int, error) { return dumpTable[models.Company](ctx, e.db, w, e.batchSize) }},
		{"products", func() (int, error) { return dumpTable[models.Product](ctx, e.db, w, e.batchSize) }},
		{"product_colors", func() (int, error) { return dumpTable[models.ProductColor](ctx, e.db, w, e.batchSize) }},
		{"product_images", func() (int, error) { return dumpTable[models.ProductImage](ctx, e.db, w, e.batchSize) }},
		{"product_color_images", func() (int, error) { return dumpTable[models.ProductColorImage](ctx, e.db, w, e.batchSize) }},
		{"orders", func() (int, error) { return dumpTable[models.Order](ctx, e.db, w, e.batchSize) }},
		{"order_items", func() (int, error) { return dumpTable[models.OrderItem](ctx, e.db, w, e.batchSize) }},
		{"settings", func() (int, error) { return dumpTable[models.Setting](ctx, e.db, w, e.batchSize) }},
		{"site_images", func() (int, error) { return dumpTable[models.SiteImage](ctx, e.db, w, e.batchSize) }},
	}

	for _, s := range steps {
		n, err := s.dump()
		if err != nil {
			e.log.Error("Не удалось выгрузить таблицу", zap.String("table", s.table), zap.Error(err))
			return err
		}
		e.log.Debug("Таблица выгружена", zap.String("table", s.table), zap.Int("rows", n))
	}

	_, err := io.WriteString(w, "SET FOREIGN_KEY_CHECKS=1;\n")
	if err == nil {
		e.log.Info("SQL-экспорт завершён")
	}
	return err
}
