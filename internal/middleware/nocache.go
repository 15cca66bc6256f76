package middleware

import "github.com/gin-gonic/gin"

// NoCache stops browsers from caching pages, so the back button never shows
// a view of another login state.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, public, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
