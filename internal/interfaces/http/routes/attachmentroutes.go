package routes

import (
	"github.com/gin-gonic/gin"

	attachmenthandlers "ticketsys/internal/interfaces/http/handlers/attachment"
	"ticketsys/internal/interfaces/http/middleware"
	"ticketsys/internal/shared/authorization"
)

// AttachmentRouteConfig holds dependencies for attachment routes.
type AttachmentRouteConfig struct {
	AttachmentHandler *attachmenthandlers.AttachmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupAttachmentRoutes configures attachment download and deletion routes.
// Uploads live under /tickets/:id/attachments.
func SetupAttachmentRoutes(engine *gin.Engine, cfg *AttachmentRouteConfig) {
	attachments := engine.Group("/attachments")
	attachments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		attachments.GET("/:id/download", cfg.AttachmentHandler.Download)
		attachments.GET("/:id/preview", cfg.AttachmentHandler.Preview)
		attachments.DELETE("/:id",
			authorization.RequireRole(authorization.RoleAdmin),
			cfg.AttachmentHandler.Delete)
	}
}
