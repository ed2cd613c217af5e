package routes

import (
	"github.com/gin-gonic/gin"

	adminhandlers "ticketsys/internal/interfaces/http/handlers/admin"
	"ticketsys/internal/interfaces/http/middleware"
	"ticketsys/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	UserHandler      *adminhandlers.UserHandler
	LogHandler       *adminhandlers.LogHandler
	DashboardHandler *adminhandlers.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// SetupAdminRoutes configures admin-only routes.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireRole(authorization.RoleAdmin))
	{
		admin.GET("/users", cfg.UserHandler.ListUsers)
		admin.GET("/users/:id", cfg.UserHandler.GetUser)
		admin.PATCH("/users/:id", cfg.UserHandler.UpdateUser)
		admin.POST("/users/:id/role", cfg.UserHandler.SetRole)
		admin.DELETE("/users/:id", cfg.UserHandler.DeleteUser)

		admin.GET("/logs", cfg.LogHandler.ListLogs)
		admin.GET("/reports/activity", cfg.LogHandler.ActivityReport)

		admin.GET("/dashboard", cfg.DashboardHandler.Dashboard)
	}
}
