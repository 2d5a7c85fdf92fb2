package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user id set by the JWT middleware.
// Writes the 401 response itself and returns "" when missing.
func currentUserID(c *gin.Context) string {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return ""
	}
	userID, _ := userIDVal.(string)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be numeric"})
		return 0, false
	}
	return uint(v), true
}
