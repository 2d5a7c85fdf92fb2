package reviewControllers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Alamatniige/izaj-ecommerce-sub001/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Order{}, &models.OrderItem{},
		&models.Review{}, &models.ReviewItem{},
	))
	return db
}

var orderSeq int

func seedOrder(t *testing.T, db *gorm.DB, userID string, status string) *models.Order {
	t.Helper()
	orderSeq++
	order := models.Order{
		OrderNumber: fmt.Sprintf("20250101000000-review-%d", orderSeq),
		UserID:      userID,
		TotalAmount: 5000,
		Status:      models.OrderStatus(status),
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Pendant Lamp", UnitPrice: 2500, Quantity: 1},
			{ProductID: 2, ProductName: "Wall Sconce", UnitPrice: 2500, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func TestSubmitReview_CompletedOrderSucceeds(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "user-1", "complete")

	review, err := SubmitReview(db, "user-1", order.ID, 5, "Great product")
	require.NoError(t, err)
	assert.Equal(t, order.ID, review.OrderID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Great product", review.Comment)

	// products are copied from the order's line items
	require.Len(t, review.Items, 2)
	assert.Equal(t, "Pendant Lamp", review.Items[0].ProductName)
	assert.Equal(t, "Wall Sconce", review.Items[1].ProductName)
}

func TestSubmitReview_OnePerOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "user-1", "complete")

	first, err := SubmitReview(db, "user-1", order.ID, 5, "Great product")
	require.NoError(t, err)

	// a second submission fails regardless of differing content
	_, err = SubmitReview(db, "user-1", order.ID, 1, "Changed my opinion")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	var reviews []models.Review
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&reviews).Error)
	require.Len(t, reviews, 1)
	assert.Equal(t, first.ID, reviews[0].ID)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestSubmitReview_RequiresCompleteStatus(t *testing.T) {
	db := setupTestDB(t)
	for _, status := range []string{"pending", "approved", "in_transit", "delivering", "cancelled"} {
		t.Run(status, func(t *testing.T) {
			order := seedOrder(t, db, "user-1", status)
			_, err := SubmitReview(db, "user-1", order.ID, 4, "nice")
			assert.ErrorIs(t, err, ErrOrderNotComplete)
		})
	}
}

func TestSubmitReview_RatingBounds(t *testing.T) {
	db := setupTestDB(t)

	for _, rating := range []int{0, -1, 6, 100} {
		order := seedOrder(t, db, "user-1", "complete")
		_, err := SubmitReview(db, "user-1", order.ID, rating, "nice")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	for _, rating := range []int{1, 5} {
		order := seedOrder(t, db, "user-1", "complete")
		_, err := SubmitReview(db, "user-1", order.ID, rating, "nice")
		assert.NoError(t, err)
	}
}

func TestSubmitReview_CommentRequired(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "user-1", "complete")

	for _, comment := range []string{"", "   ", "\n\t"} {
		_, err := SubmitReview(db, "user-1", order.ID, 5, comment)
		assert.ErrorIs(t, err, ErrEmptyComment)
	}
}

func TestSubmitReview_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "user-1", "complete")

	_, err := SubmitReview(db, "someone-else", order.ID, 5, "not mine")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSubmitReview_DoesNotTouchOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "user-1", "complete")

	_, err := SubmitReview(db, "user-1", order.ID, 5, "Great product")
	require.NoError(t, err)

	var current models.Order
	require.NoError(t, db.First(&current, order.ID).Error)
	assert.Equal(t, models.OrderStatusComplete, current.Status)
	assert.Equal(t, order.Version, current.Version)
}

func TestHasReview(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "user-1", "complete")

	reviewed, err := HasReview(db, order.ID)
	require.NoError(t, err)
	assert.False(t, reviewed)

	_, err = SubmitReview(db, "user-1", order.ID, 5, "Great product")
	require.NoError(t, err)

	reviewed, err = HasReview(db, order.ID)
	require.NoError(t, err)
	assert.True(t, reviewed)
}
