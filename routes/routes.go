package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the user, order, and
// fulfillment/admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// User routes (JWT-protected): cart + checkout
	SetupUserRoutes(r, db)

	// Order routes: listing, detail, cancellation, review, websocket feed
	SetupOrderRoutes(r, db)

	// Fulfillment + admin routes (API-key-protected)
	SetupFulfillmentRoutes(r, db)
}
