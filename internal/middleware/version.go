package middleware

import "github.com/gin-gonic/gin"

const HeaderAPIVersion = "X-API-Version"

// Version stamps responses of a versioned route group.
func Version(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(HeaderAPIVersion, version)
		c.Next()
	}
}
