package checkoutControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	cartControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/cart"
	orderControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/order"
	"github.com/Alamatniige/izaj-ecommerce-sub001/models"
	"github.com/Alamatniige/izaj-ecommerce-sub001/pricing"
)

var (
	ErrIncompleteContact    = errors.New("contact name and email are required")
	ErrIncompleteAddress    = errors.New("street address, city and province are required")
	ErrMissingPhone         = errors.New("shipping phone number is required")
	ErrMissingPaymentMethod = errors.New("a valid payment method is required")
	ErrEmptyCart            = errors.New("cart is empty")
)

// Payment methods accepted at checkout.
var supportedPaymentMethods = map[string]bool{
	"cod":   true,
	"gcash": true,
	"card":  true,
}

type CheckoutRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	RecipientName      string `json:"recipient_name"`
	ShippingPhone      string `json:"shipping_phone"`
	ShippingAddress    string `json:"shipping_address"` // street / house
	ShippingBarangay   string `json:"shipping_barangay"`
	ShippingCity       string `json:"shipping_city"`
	ShippingProvince   string `json:"shipping_province"`
	ShippingPostalCode string `json:"shipping_postal_code"`

	PaymentMethod string `json:"payment_method"`
	CustomerNotes string `json:"customer_notes"` // opaque passthrough
}

// Validate checks the request fields in a fixed order so the caller always
// gets the first failing condition: contact, then address, then phone, then
// payment method. No side effects happen before all of these pass.
func (r *CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.FirstName) == "" ||
		strings.TrimSpace(r.LastName) == "" {
		return ErrIncompleteContact
	}
	if strings.TrimSpace(r.ShippingAddress) == "" ||
		strings.TrimSpace(r.ShippingCity) == "" ||
		strings.TrimSpace(r.ShippingProvince) == "" {
		return ErrIncompleteAddress
	}
	if strings.TrimSpace(r.ShippingPhone) == "" {
		return ErrMissingPhone
	}
	if !supportedPaymentMethods[strings.ToLower(strings.TrimSpace(r.PaymentMethod))] {
		return ErrMissingPaymentMethod
	}
	return nil
}

// ComposeDeliveryAddress joins the non-empty address components with ", ",
// so missing parts never leave dangling separators behind.
func ComposeDeliveryAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// generateOrderNumber builds a unique order reference, e.g.
// 20250908130500-<uuid4>.
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// SubmitCheckout turns the user's cart into a pending order. The order row,
// its frozen line-item snapshot, and the cart clear all happen inside one
// transaction: if persistence fails, the cart is left untouched so the user
// can retry without losing their selection.
func SubmitCheckout(db *gorm.DB, userID string, req CheckoutRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := cartControllers.GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := cart.Totals()
	shippingFee := pricing.ShippingFee(totals.TotalPrice)

	// Freeze the cart lines as of now; later catalog or cart changes must
	// not reach the order.
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		var discount float64
		if item.RegularPrice > item.UnitPrice {
			discount = (item.RegularPrice - item.UnitPrice) * float64(item.Quantity)
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Image:       item.Image,
			UnitPrice:   item.UnitPrice,
			Discount:    discount,
			Quantity:    item.Quantity,
		})
	}

	order := models.Order{
		OrderNumber:   generateOrderNumber(),
		UserID:        userID,
		Items:         orderItems,
		TotalAmount:   totals.TotalPrice,
		ShippingFee:   shippingFee,
		Status:        models.OrderStatusPending,
		PaymentMethod: strings.ToLower(strings.TrimSpace(req.PaymentMethod)),
		RecipientName: strings.TrimSpace(req.RecipientName),
		ShippingPhone: strings.TrimSpace(req.ShippingPhone),
		DeliveryAddress: ComposeDeliveryAddress(
			req.ShippingAddress,
			req.ShippingBarangay,
			req.ShippingCity,
			req.ShippingProvince,
			req.ShippingPostalCode,
		),
		CustomerNotes: req.CustomerNotes,
		CreatedAt:     time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		// Clear the cart only after the order row exists; a rollback here
		// restores the cart lines too.
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total_amount": order.TotalAmount,
		"shipping_fee": order.ShippingFee,
	}).Info("order placed")

	orderControllers.BroadcastOrderEvent(orderControllers.OrderEvent{
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
	})
	return &order, nil
}

// -------- Handlers --------

// POST /checkout
func SubmitCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID, _ := userIDVal.(string)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := SubmitCheckout(db, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrIncompleteContact),
				errors.Is(err, ErrIncompleteAddress),
				errors.Is(err, ErrMissingPhone),
				errors.Is(err, ErrMissingPaymentMethod),
				errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logrus.WithError(err).Error("checkout failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
			"shipping_fee": order.ShippingFee,
			"grand_total":  pricing.Total(order.TotalAmount, order.ShippingFee),
		})
	}
}
