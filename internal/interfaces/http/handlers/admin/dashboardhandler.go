package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketsys/internal/application/ticket/usecases"
	"ticketsys/internal/shared/logger"
	"ticketsys/internal/shared/utils"
)

type DashboardHandler struct {
	dashboardUC *usecases.DashboardUseCase
	logger      logger.Interface
}

func NewDashboardHandler(dashboardUC *usecases.DashboardUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// Dashboard handles GET /admin/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
