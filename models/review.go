package models

import "time"

// Review is kept in its own table keyed by order id rather than as a flag on
// Order, so feedback state can never be confused with fulfillment state. The
// unique index is what enforces one review per order, even under a race.
type Review struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	OrderID   uint         `gorm:"uniqueIndex;not null" json:"order_id"`
	UserID    string       `gorm:"index" json:"user_id"`
	Rating    int          `gorm:"not null" json:"rating"` // 1..5
	Comment   string       `gorm:"not null" json:"comment"`
	Items     []ReviewItem `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}

// ReviewItem names a product covered by the review, copied from the order's
// line items at submission time.
type ReviewItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ReviewID    uint   `gorm:"index" json:"review_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
}
