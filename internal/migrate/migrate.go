package migrate

import (
	"context"
	"storefront/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateChecks    bool // CHECK-constraint для целостности (MySQL 8.0.16+)
	CreateIndexes   bool // составные индексы
	CreateFKsViaSQL bool // FK каталога с ON DELETE SET NULL
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateChecks:    true,
		CreateIndexes:   true,
		CreateFKsViaSQL: true,
	}
}

type checkDef struct {
	table, name, expr string
}

var checks = []checkDef{
	{"products", "chk_products_stock_non_negative", "stock >= 0"},
	{"products", "chk_products_price_non_negative", "price >= 0"},
	{"products", "chk_products_status_allowed", "status IN ('draft','published')"},
	{"product_colors", "chk_product_colors_stock_non_negative", "stock >= 0"},
	{"orders", "chk_orders_status_allowed", "status IN ('pending','processing','shipped','delivered','cancelled')"},
	{"orders", "chk_orders_totals_non_negative", "subtotal >= 0 AND total >= 0 AND shipping_cost >= 0"},
	{"order_items", "chk_order_items_quantity_gt_zero", "quantity > 0"},
	{"order_items", "chk_order_items_prices_non_negative", "product_price >= 0 AND subtotal >= 0"},
}

type indexDef struct {
	model     any
	name, ddl string
}

var indexes = []indexDef{
	{&models.Product{}, "ix_products_status_created", "CREATE INDEX ix_products_status_created ON products (status, created_at)"},
	{&models.Order{}, "ix_orders_status_created", "CREATE INDEX ix_orders_status_created ON orders (status, created_at)"},
	{&models.ProductImage{}, "ix_product_images_product_sort", "CREATE INDEX ix_product_images_product_sort ON product_images (product_id, sort_order)"},
	{&models.ProductColorImage{}, "ix_product_color_images_color_sort", "CREATE INDEX ix_product_color_images_color_sort ON product_color_images (color_id, sort_order)"},
}

type fkDef struct {
	table, name, ddl string
}

// Удаление категории/подкатегории/бренда не удаляет товары: ссылка обнуляется.
var foreignKeys = []fkDef{
	{"products", "fk_products_category", "ALTER TABLE products ADD CONSTRAINT fk_products_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL"},
	{"products", "fk_products_subcategory", "ALTER TABLE products ADD CONSTRAINT fk_products_subcategory FOREIGN KEY (subcategory_id) REFERENCES subcategories(id) ON DELETE SET NULL"},
	{"products", "fk_products_company", "ALTER TABLE products ADD CONSTRAINT fk_products_company FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE SET NULL"},
}

func constraintExists(db *gorm.DB, table, name string) (bool, error) {
	var cnt int64
	err := db.Raw(`
SELECT COUNT(*) FROM information_schema.TABLE_CONSTRAINTS
WHERE CONSTRAINT_SCHEMA = DATABASE() AND TABLE_NAME = ? AND CONSTRAINT_NAME = ?`, table, name).Scan(&cnt).Error
	return cnt > 0, err
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")
	db = db.WithContext(ctx)

	log.Info("Создание таблиц")
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		for _, c := range checks {
			exists, err := constraintExists(db, c.table, c.name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := db.Exec("ALTER TABLE " + c.table + " ADD CONSTRAINT " + c.name + " CHECK (" + c.expr + ")").Error; err != nil {
				log.Error("Не удалось создать CHECK", zap.String("name", c.name), zap.Error(err))
				return err
			}
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		for _, ix := range indexes {
			if db.Migrator().HasIndex(ix.model, ix.name) {
				continue
			}
			if err := db.Exec(ix.ddl).Error; err != nil {
				log.Error("Не удалось создать индекс", zap.String("name", ix.name), zap.Error(err))
				return err
			}
		}
		log.Info("Индексы успешно созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		for _, fk := range foreignKeys {
			exists, err := constraintExists(db, fk.table, fk.name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := db.Exec(fk.ddl).Error; err != nil {
				log.Error("Не удалось создать FK", zap.String("name", fk.name), zap.Error(err))
				return err
			}
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
