package middleware

import "github.com/gin-gonic/gin"

// catalogVersionHeader tells clients which catalog answered the request.
const catalogVersionHeader = "X-Catalog-Version"

// CatalogVersion stamps every response with the served catalog version so
// clients can detect a reload and logs can attribute answers to a document.
func CatalogVersion(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if version != "" {
			c.Writer.Header().Set(catalogVersionHeader, version)
		}
		c.Next()
	}
}
