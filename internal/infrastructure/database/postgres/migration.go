// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// User domain
		&user.User{},
		&user.Admin{},

		// Catalog domain
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Banner{},

		// Order domain
		&order.Order{},
		&order.Item{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_new_arrival ON products(is_new_arrival, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_sort_order ON products(sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Banner indexes
		"CREATE INDEX IF NOT EXISTS idx_banners_active_sort ON banners(is_active, sort_order)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_payment_id ON orders(payment_id)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdmin(); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := m.seedBanners(); err != nil {
		return fmt.Errorf("failed to seed banners: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdmin() error {
	log.Println("👤 Seeding admin account...")

	var existing user.Admin
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		admin := user.Admin{
			Email:    "admin@example.com",
			Password: string(hashedPassword),
			Name:     "Store Admin",
			IsActive: true,
		}

		if err := m.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		log.Println("✅ Created admin: admin@example.com (password: admin123)")
	} else {
		log.Printf("⏭️ Admin already exists with ID: %d", existing.ID)
	}

	return nil
}

// seedCategories creates default product categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []catalog.Category{
		{
			Name:      "Sarees",
			Slug:      "sarees",
			SortOrder: 1,
			IsActive:  true,
		},
		{
			Name:      "Kurtis",
			Slug:      "kurtis",
			SortOrder: 2,
			IsActive:  true,
		},
		{
			Name:      "Kids Wear",
			Slug:      "kids-wear",
			SortOrder: 3,
			IsActive:  true,
		},
		{
			Name:      "Accessories",
			Slug:      "accessories",
			SortOrder: 4,
			IsActive:  true,
		},
	}

	for _, category := range categories {
		var existing catalog.Category
		result := m.db.Where("slug = ?", category.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		} else {
			log.Printf("⏭️ Category already exists: %s", category.Name)
		}
	}

	return nil
}

// seedProducts creates sample products for development
func (m *Migration) seedProducts() error {
	log.Println("🛍️ Seeding sample products...")

	var productCount int64
	m.db.Model(&catalog.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	var sarees catalog.Category
	if err := m.db.Where("slug = ?", "sarees").First(&sarees).Error; err != nil {
		log.Println("⚠️ Sarees category missing, skipping product seed")
		return nil
	}

	products := []catalog.Product{
		{
			Name:         "Kasavu Cotton Saree",
			Description:  "Handwoven cotton saree with traditional kasavu border. Lightweight and comfortable for daily wear.",
			MRP:          249900,
			SellingPrice: 189900,
			CategoryID:   sarees.ID,
			Badge:        "Bestseller",
			IsNewArrival: false,
			IsActive:     true,
			SortOrder:    1,
		},
		{
			Name:         "Soft Silk Saree",
			Description:  "Soft silk saree with contrast pallu and zari work. Ideal for festive occasions.",
			MRP:          399900,
			SellingPrice: 329900,
			CategoryID:   sarees.ID,
			Badge:        "New",
			IsNewArrival: true,
			IsActive:     true,
			SortOrder:    2,
		},
		{
			Name:         "Printed Georgette Saree",
			Description:  "Floral printed georgette saree with matching blouse piece.",
			MRP:          179900,
			SellingPrice: 129900,
			CategoryID:   sarees.ID,
			IsNewArrival: true,
			IsActive:     true,
			SortOrder:    3,
		},
	}

	for _, prod := range products {
		if err := m.db.Create(&prod).Error; err != nil {
			log.Printf("⚠️ Failed to create sample product %s: %v", prod.Name, err)
		} else {
			log.Printf("✅ Created sample product: %s", prod.Name)
		}
	}

	return nil
}

// seedBanners creates homepage banners for development
func (m *Migration) seedBanners() error {
	log.Println("🖼️ Seeding banners...")

	var bannerCount int64
	m.db.Model(&catalog.Banner{}).Count(&bannerCount)
	if bannerCount > 0 {
		log.Println("⏭️ Banners already exist")
		return nil
	}

	banners := []catalog.Banner{
		{
			Title:     "Festive Collection",
			ImageURL:  "/assets/banners/festive.jpg",
			TargetURL: "/products?category=sarees",
			SortOrder: 1,
			IsActive:  true,
		},
		{
			Title:     "New Arrivals",
			ImageURL:  "/assets/banners/new-arrivals.jpg",
			TargetURL: "/products?new_arrivals=true",
			SortOrder: 2,
			IsActive:  true,
		},
	}

	for _, banner := range banners {
		if err := m.db.Create(&banner).Error; err != nil {
			log.Printf("⚠️ Failed to create banner %s: %v", banner.Title, err)
		} else {
			log.Printf("✅ Created banner: %s", banner.Title)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"order_items",
		"orders",
		"banners",
		"products",
		"categories",
		"admins",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
