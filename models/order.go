package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	// Order statuses (fulfillment flow)
	OrderStatusPending   OrderStatus = "pending"    // Order placed, awaiting approval
	OrderStatusApproved  OrderStatus = "approved"   // Approved by fulfillment
	OrderStatusInTransit OrderStatus = "in_transit" // Out for delivery
	OrderStatusComplete  OrderStatus = "complete"   // Customer received the item
	OrderStatusCancelled OrderStatus = "cancelled"  // Cancelled while still pending

	// Legacy value still present in old rows; read as in_transit
	legacyStatusDelivering = "delivering"
)

var ErrUnknownStatus = errors.New("unknown order status")

// ParseOrderStatus maps a raw string onto the closed status enumeration.
// The legacy value "delivering" is accepted and normalized to in_transit;
// anything else outside the enumeration is a data-integrity error.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusApproved):
		return OrderStatusApproved, nil
	case string(OrderStatusInTransit), legacyStatusDelivering:
		return OrderStatusInTransit, nil
	case string(OrderStatusComplete):
		return OrderStatusComplete, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", ErrUnknownStatus
	}
}

// NextStatus returns the sole legal fulfillment successor of a status.
// Terminal states (complete, cancelled) have none. Cancellation is not a
// fulfillment step and is handled separately.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusApproved, true
	case OrderStatusApproved:
		return OrderStatusInTransit, true
	case OrderStatusInTransit:
		return OrderStatusComplete, true
	default:
		return "", false
	}
}

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      string      `gorm:"index;not null" json:"user_id"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	// TotalAmount is the items subtotal only; ShippingFee is stored
	// separately so the two can be combined or displayed independently.
	TotalAmount float64 `json:"total_amount"`
	ShippingFee float64 `json:"shipping_fee"`

	Status             OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMethod      string      `json:"payment_method"`
	RecipientName      string      `json:"recipient_name"`
	ShippingPhone      string      `json:"shipping_phone"`
	DeliveryAddress    string      `json:"delivery_address"`
	CustomerNotes      string      `json:"customer_notes"`
	TrackingNumber     string      `json:"tracking_number"`
	CancellationReason string      `json:"cancellation_reason"`
	AdminNotes         string      `json:"admin_notes"`

	// Version is bumped on every status write; status updates are issued as
	// compare-and-swap against the current status so a racing cancellation
	// and fulfillment advancement cannot both win.
	Version   uint      `gorm:"default:0" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a frozen snapshot of a cart line at checkout time. Prices
// never change after creation even if the catalog price does. Discount is
// the total amount deducted for the line versus its original price, so the
// original unit price is UnitPrice + Discount/Quantity.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Image       string  `json:"image"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	Quantity    int     `json:"quantity"`
}
