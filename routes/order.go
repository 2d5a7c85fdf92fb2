package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/order"
	reviewControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/review"
	"github.com/Alamatniige/izaj-ecommerce-sub001/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	// websocket endpoint for real-time order status updates
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Fetch the current user's orders, optionally filtered by status
		orders.GET("/", orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order with its items
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Cancel a pending order (reason required)
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db))

		// Review a completed order
		orders.POST("/:orderID/review", reviewControllers.SubmitReviewHandler(db))
		orders.GET("/:orderID/review", reviewControllers.GetReviewStateHandler(db))
	}
}
