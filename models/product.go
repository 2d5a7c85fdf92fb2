package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is the catalog read model consumed when adding to cart. Catalog
// management itself lives elsewhere; the storefront only reads it.
type Product struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `json:"description"`
	SalePrice    float64 `gorm:"not null" json:"sale_price"`
	RegularPrice float64 `json:"regular_price"`
	Image        string  `json:"image"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
