// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Dependency order: catalog tables first, then orders
	models := []interface{}{
		&catalog.Product{},
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_brand_active ON products(brand, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price_cents)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
	}

	for _, idx := range indexes {
		if err := m.db.Exec(idx).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData inserts demo catalog rows in development environments
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	sale := int64(800)
	products := []catalog.Product{
		{
			Name:       "Canvas Weekend Tote",
			Brand:      "Harborline",
			Category:   "bags",
			PriceCents: 2000,
			Image:      "/images/products/canvas-tote.jpg",
			Stock:      120,
			IsActive:   true,
		},
		{
			Name:           "Enamel Camp Mug",
			Brand:          "Harborline",
			Category:       "kitchen",
			PriceCents:     1000,
			SalePriceCents: &sale,
			Image:          "/images/products/camp-mug.jpg",
			Stock:          300,
			IsActive:       true,
		},
		{
			Name:       "Trail Cooking Field Guide",
			Brand:      "Northpage",
			Category:   "ebooks",
			PriceCents: 1499,
			Image:      "/images/products/field-guide.jpg",
			Stock:      0,
			IsDigital:  true,
			IsActive:   true,
		},
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("Seeded %d demo products", len(products))
	return nil
}
