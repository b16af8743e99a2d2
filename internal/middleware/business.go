package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BusinessGuard returns middleware that ensures business context is present.
// It relies on AuthMiddleware having already set the business_id.
func BusinessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, exists := c.Get(ContextKeyBusinessID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "business context required"},
			})
			return
		}
		c.Next()
	}
}
