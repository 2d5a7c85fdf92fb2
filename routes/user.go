package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/cart"
	checkoutControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/checkout"
	"github.com/Alamatniige/izaj-ecommerce-sub001/middleware"
)

// SetupUserRoutes registers the "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// Shopping cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartItem(db))                 // POST /user/cart
			cartGroup.PUT("/", cartControllers.UpdateCartItemQuantity(db))       // PUT /user/cart
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))             // DELETE /user/cart
		}

		// Checkout
		userGroup.POST("/checkout", checkoutControllers.SubmitCheckoutHandler(db)) // POST /user/checkout
	}
}
