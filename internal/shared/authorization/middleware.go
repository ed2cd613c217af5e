package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketsys/internal/shared/constants"
)

// RequireRole aborts the request unless the authenticated actor holds at
// least the required role.
func RequireRole(required Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ParseRole(c.GetString(constants.ContextKeyUserRole))
		if !Authorize(actor, required) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": required.String() + " access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
