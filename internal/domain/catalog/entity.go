// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a storefront product
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	MRP          int64          `gorm:"not null" json:"mrp"`           // list price in paise
	SellingPrice int64          `gorm:"not null" json:"selling_price"` // charged price in paise
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`
	ImageURL     string         `gorm:"size:500" json:"image_url"`
	Badge        string         `gorm:"size:50" json:"badge,omitempty"` // e.g. "Bestseller", "Fresh"
	IsNewArrival bool           `gorm:"default:false" json:"is_new_arrival"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	SortOrder    int            `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// Category represents a product category
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	ImageURL  string         `gorm:"size:500" json:"image_url"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Banner represents a promotional banner shown on the home page
type Banner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255" json:"title"`
	ImageURL  string         `gorm:"not null;size:500" json:"image_url"`
	TargetURL string         `gorm:"size:500" json:"target_url,omitempty"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }
func (Banner) TableName() string   { return "banners" }

// DiscountPercentage returns the rounded-down percent saved off the MRP
func (p *Product) DiscountPercentage() int {
	if p.MRP > 0 && p.SellingPrice < p.MRP {
		return int(((p.MRP - p.SellingPrice) * 100) / p.MRP)
	}
	return 0
}
