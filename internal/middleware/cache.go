package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore disables caching. Timer state and results must always be fresh.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
