package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookie = "sf_visitor"
	visitorCtxKey = "visitorID"

	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// visitorMiddleware assigns each browser a stable visitor id, the
// server-side analog of the original client's per-browser storage.
func visitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(visitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set(visitorCtxKey, id)
		c.Next()
	}
}
