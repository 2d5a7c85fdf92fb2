package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Alamatniige/izaj-ecommerce-sub001/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product does not exist")
	ErrItemNotFound    = errors.New("cart item not found")
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type SetQuantityInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// -------- Core Logic --------

// GetOrCreateCart loads the user's cart with its items, creating the empty
// cart row on first use.
func GetOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("added_at ASC, id ASC")
	}).Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product into the cart. Adding a product already present
// increments its quantity instead of duplicating the line. The product's
// current sale and regular prices are snapshotted onto the line.
func AddItem(db *gorm.DB, userID string, productID uint, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:       cart.CartID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			Image:        product.Image,
			UnitPrice:    product.SalePrice,
			RegularPrice: product.RegularPrice,
			Quantity:     qty,
			AddedAt:      time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	item.Quantity += qty
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SetQuantity sets a line's quantity exactly. Zero or negative removes the
// line; a line is never persisted below quantity 1.
func SetQuantity(db *gorm.DB, userID string, productID uint, qty int) (*models.CartItem, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	if qty <= 0 {
		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			Delete(&models.CartItem{})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrItemNotFound
		}
		return nil, nil
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	item.Quantity = qty
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a single line from the cart.
func RemoveItem(db *gorm.DB, userID string, productID uint) error {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ClearCart empties all line items. The cart row itself stays.
func ClearCart(db *gorm.DB, userID string) error {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			logrus.WithError(err).Error("failed to fetch cart")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":  cart.Items,
			"totals": cart.Totals(),
		})
	}
}

// POST /user/cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		item, err := AddItem(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			respondCartError(c, err, "Failed to add item to cart")
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /user/cart
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		item, err := SetQuantity(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			respondCartError(c, err, "Failed to update cart item")
			return
		}
		if item == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		productID, ok := paramUint(c, "product_id")
		if !ok {
			return
		}
		if err := RemoveItem(db, userID, productID); err != nil {
			respondCartError(c, err, "Failed to delete item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			return
		}
		if err := ClearCart(db, userID); err != nil {
			logrus.WithError(err).Error("failed to clear cart")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func respondCartError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("cart operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
