package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CartID       uint      `gorm:"index" json:"cart_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Image        string    `json:"image"`
	UnitPrice    float64   `json:"unit_price"`    // sale price at add time
	RegularPrice float64   `json:"regular_price"` // pre-discount price at add time
	Quantity     int       `json:"quantity"`      // always >= 1 while persisted
	AddedAt      time.Time `json:"added_at"`
}

type CartTotals struct {
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

// Totals recomputes the aggregate from the current line items on every call
// rather than caching them, so they cannot drift from the lines.
func (c *Cart) Totals() CartTotals {
	var t CartTotals
	for _, item := range c.Items {
		t.TotalItems += item.Quantity
		t.TotalPrice += item.UnitPrice * float64(item.Quantity)
	}
	return t
}
