package middleware

import (
	"github.com/gin-gonic/gin"

	"ticketsys/internal/shared/constants"
)

// RequestMeta copies the client address and user agent into the gin context
// so handlers can stamp audit entries without reaching into the request.
func RequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyClientIP, c.ClientIP())
		c.Set(constants.ContextKeyUserAgent, c.Request.UserAgent())
		c.Next()
	}
}
