package reviewControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Alamatniige/izaj-ecommerce-sub001/models"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNotComplete = errors.New("only completed orders can be reviewed")
	ErrAlreadyReviewed  = errors.New("this order has already been reviewed")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrEmptyComment     = errors.New("a review comment is required")
)

type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// -------- Core Logic --------

// SubmitReview records a review for a completed order. At most one review
// may exist per order; the check here is backed by a unique index on
// order_id, so a concurrent duplicate also fails. The reviewed products are
// copied from the order's line items. Submitting a review never touches the
// order's fulfillment status.
func SubmitReview(db *gorm.DB, userID string, orderID uint, rating int, comment string) (*models.Review, error) {
	var order models.Order
	if err := db.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	status, err := models.ParseOrderStatus(string(order.Status))
	if err != nil {
		return nil, err
	}
	if status != models.OrderStatusComplete {
		return nil, ErrOrderNotComplete
	}

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrEmptyComment
	}

	var count int64
	if err := db.Model(&models.Review{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyReviewed
	}

	items := make([]models.ReviewItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.ReviewItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
		})
	}

	review := models.Review{
		OrderID:   order.ID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		Items:     items,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&review).Error; err != nil {
		// The unique index catches a duplicate that slipped past the count.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"rating":       rating,
	}).Info("review submitted")
	return &review, nil
}

// HasReview reports whether a review exists for the order.
func HasReview(db *gorm.DB, orderID uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Review{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// -------- Handlers --------

// POST /orders/:orderID/review
func SubmitReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID, _ := userIDVal.(string)

		orderID, err := parseOrderID(c.Param("orderID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID must be numeric"})
			return
		}

		var req SubmitReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		review, err := SubmitReview(db, userID, orderID, req.Rating, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrEmptyComment):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, ErrOrderNotComplete), errors.Is(err, ErrAlreadyReviewed):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				logrus.WithError(err).Error("failed to submit review")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
			}
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// GET /orders/:orderID/review reports whether a review exists, for gating the UI.
func GetReviewStateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseOrderID(c.Param("orderID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID must be numeric"})
			return
		}
		reviewed, err := HasReview(db, orderID)
		if err != nil {
			logrus.WithError(err).Error("failed to check review state")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check review"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviewed": reviewed})
	}
}
