package middleware

import (
	"github.com/gin-gonic/gin"
)

// HeaderAPIVersion is the response header carrying the served API version.
const HeaderAPIVersion = "X-API-Version"

// APIVersion stamps every response with the version of the API surface so
// clients can tell which contract they are talking to.
func APIVersion(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(HeaderAPIVersion, version)
		c.Next()
	}
}
