package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Alamatniige/izaj-ecommerce-sub001/controllers/order"
	"github.com/Alamatniige/izaj-ecommerce-sub001/middleware"
)

// SetupFulfillmentRoutes registers the endpoints used by the fulfillment
// operator and admin tooling. All are API-key-protected.
func SetupFulfillmentRoutes(r *gin.Engine, db *gorm.DB) {
	fulfillment := r.Group("/fulfillment")
	fulfillment.Use(middleware.ValidateAPIKey)
	{
		// Advance an order one step along the fulfillment path
		fulfillment.PUT("/orders/:orderID/status", orderControllers.AdvanceOrderStatusHandler(db))
	}

	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
	}
}
