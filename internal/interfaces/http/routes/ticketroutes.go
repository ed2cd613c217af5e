package routes

import (
	"github.com/gin-gonic/gin"

	attachmenthandlers "ticketsys/internal/interfaces/http/handlers/attachment"
	tickethandlers "ticketsys/internal/interfaces/http/handlers/ticket"
	"ticketsys/internal/interfaces/http/middleware"
	"ticketsys/internal/shared/authorization"
)

// TicketRouteConfig holds dependencies for ticket routes.
type TicketRouteConfig struct {
	TicketHandler     *tickethandlers.TicketHandler
	AttachmentHandler *attachmenthandlers.AttachmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupTicketRoutes configures ticket routes.
func SetupTicketRoutes(engine *gin.Engine, cfg *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", cfg.TicketHandler.CreateTicket)
		tickets.GET("", cfg.TicketHandler.ListTickets)

		// Specific action endpoints must come before the bare /:id routes.
		tickets.POST("/:id/assign",
			authorization.RequireRole(authorization.RoleOperator),
			cfg.TicketHandler.AssignTicket)
		tickets.POST("/:id/reassign",
			authorization.RequireRole(authorization.RoleAdmin),
			cfg.TicketHandler.ReassignTicket)
		tickets.POST("/:id/close",
			authorization.RequireRole(authorization.RoleOperator),
			cfg.TicketHandler.CloseTicket)
		tickets.POST("/:id/messages", cfg.TicketHandler.AddMessage)
		tickets.POST("/:id/attachments", cfg.AttachmentHandler.Upload)

		tickets.GET("/:id", cfg.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			authorization.RequireRole(authorization.RoleOperator),
			cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			authorization.RequireRole(authorization.RoleAdmin),
			cfg.TicketHandler.DeleteTicket)
	}
}
