package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const apiKey = "api"

// APIMode marks every request of a route group as a JSON API call.
func APIMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(apiKey, true)
		c.Next()
	}
}

// WantsJSON reports whether the caller gets JSON instead of a rendered page.
func WantsJSON(c *gin.Context) bool {
	if c.GetBool(apiKey) {
		return true
	}
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
