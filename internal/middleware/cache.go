package middleware

import "github.com/gin-gonic/gin"

// SetCacheHit annotates the response so dashboards and operators can see
// whether the payload was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	if hit {
		c.Header("X-Cache", "HIT")
		return
	}
	c.Header("X-Cache", "MISS")
}
