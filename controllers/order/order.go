package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Alamatniige/izaj-ecommerce-sub001/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidState  = errors.New("order status does not allow this action")
	ErrMissingReason = errors.New("a cancellation reason is required")
)

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type AdvanceStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
	AdminNotes     string `json:"admin_notes"`
}

// -------- Core Logic --------

// normalizeOrder rewrites legacy status values (delivering -> in_transit) on
// the way out. A status outside the enumeration is a data-integrity error
// and is never coerced.
func normalizeOrder(order *models.Order) error {
	status, err := models.ParseOrderStatus(string(order.Status))
	if err != nil {
		return err
	}
	order.Status = status
	return nil
}

// CancelOrder cancels a pending order on behalf of its owner. Only pending
// orders may be cancelled by the customer, and a reason is mandatory. The
// status write is a compare-and-swap against pending, so a fulfillment
// advancement racing with the cancellation leaves exactly one winner; the
// loser sees the state error. The transition is irreversible.
func CancelOrder(db *gorm.DB, userID string, orderID uint, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrMissingReason
	}

	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	result := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":              models.OrderStatusCancelled,
			"cancellation_reason": reason,
			"version":             gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidState
	}

	if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
	}).Info("order cancelled by customer")

	BroadcastOrderEvent(OrderEvent{OrderNumber: order.OrderNumber, Status: order.Status})
	return &order, nil
}

// AdvanceStatus moves an order one step along the linear fulfillment path
// pending -> approved -> in_transit -> complete. The target must be the
// exact successor of the current status; jumps and regressions are rejected.
// The write is a compare-and-swap against the stored status value, so it
// also serializes against a customer cancellation.
func AdvanceStatus(db *gorm.DB, orderID uint, target models.OrderStatus, trackingNumber, adminNotes string) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// The stored value may be the legacy synonym; compare transitions on the
	// normalized status but CAS on the raw stored value.
	storedStatus := order.Status
	current, err := models.ParseOrderStatus(string(storedStatus))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"status":   string(storedStatus),
		}).Error("order has status outside the enumeration")
		return nil, err
	}

	next, ok := models.NextStatus(current)
	if !ok || next != target {
		return nil, ErrInvalidState
	}

	updates := map[string]interface{}{
		"status":  target,
		"version": gorm.Expr("version + 1"),
	}
	if trackingNumber = strings.TrimSpace(trackingNumber); trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}
	if adminNotes = strings.TrimSpace(adminNotes); adminNotes != "" {
		updates["admin_notes"] = adminNotes
	}

	result := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, storedStatus).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race against a cancellation or another advancement.
		return nil, ErrInvalidState
	}

	if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"status":       order.Status,
	}).Info("order status advanced")

	BroadcastOrderEvent(OrderEvent{OrderNumber: order.OrderNumber, Status: order.Status})
	return &order, nil
}

// ListOrders returns a page of orders, newest first, optionally filtered by
// status. Legacy status values are normalized on the way out; rows with a
// status outside the enumeration are logged and skipped rather than coerced.
func ListOrders(db *gorm.DB, userID string, statusFilter string, limit, offset int) ([]models.Order, error) {
	query := db.Preload("Items").Order("created_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if statusFilter != "" {
		status, err := models.ParseOrderStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		if status == models.OrderStatusInTransit {
			// Old rows may still carry the legacy synonym.
			query = query.Where("status IN ?", []string{string(models.OrderStatusInTransit), "delivering"})
		} else {
			query = query.Where("status = ?", status)
		}
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(limit).Offset(offset)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	normalized := orders[:0]
	for i := range orders {
		if err := normalizeOrder(&orders[i]); err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": orders[i].ID,
				"status":   string(orders[i].Status),
			}).Error("skipping order with status outside the enumeration")
			continue
		}
		normalized = append(normalized, orders[i])
	}
	return normalized, nil
}

// GetOrder fetches a single order with its items. When userID is non-empty
// the order must belong to that user.
func GetOrder(db *gorm.DB, userID string, orderID uint) (*models.Order, error) {
	query := db.Preload("Items")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var order models.Order
	if err := query.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if err := normalizeOrder(&order); err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"status":   string(order.Status),
		}).Error("order has status outside the enumeration")
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// GET /orders?status=&limit=&offset=
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		orders, err := ListOrders(db, userID, c.Query("status"), limit, offset)
		if err != nil {
			if errors.Is(err, models.ErrUnknownStatus) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
				return
			}
			logrus.WithError(err).Error("failed to list orders")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		orderID, ok := paramUint(c, "orderID")
		if !ok {
			return
		}
		order, err := GetOrder(db, userID, orderID)
		if err != nil {
			respondOrderError(c, err, "Failed to fetch order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		orderID, ok := paramUint(c, "orderID")
		if !ok {
			return
		}
		var req CancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		order, err := CancelOrder(db, userID, orderID, req.Reason)
		if err != nil {
			respondOrderError(c, err, "Failed to cancel order")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Order cancelled",
			"order_number": order.OrderNumber,
			"status":       order.Status,
		})
	}
}

// PUT /fulfillment/orders/:orderID/status (API key)
func AdvanceOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := paramUint(c, "orderID")
		if !ok {
			return
		}
		var req AdvanceStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		target, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target status"})
			return
		}
		order, err := AdvanceStatus(db, orderID, target, req.TrackingNumber, req.AdminNotes)
		if err != nil {
			respondOrderError(c, err, "Failed to update order status")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Order status updated",
			"order_number": order.OrderNumber,
			"status":       order.Status,
		})
	}
}

// GET /admin/orders (API key)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		orders, err := ListOrders(db, "", c.Query("status"), limit, offset)
		if err != nil {
			if errors.Is(err, models.ErrUnknownStatus) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
				return
			}
			logrus.WithError(err).Error("failed to list orders")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func respondOrderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownStatus):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order data is corrupted"})
	default:
		logrus.WithError(err).Error("order operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
