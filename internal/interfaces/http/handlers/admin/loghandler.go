package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ticketsys/internal/application/audit/usecases"
	"ticketsys/internal/shared/logger"
	"ticketsys/internal/shared/utils"
)

type LogHandler struct {
	listEntriesUC *usecases.ListAuditEntriesUseCase
	reportUC      *usecases.ActivityReportUseCase
	logger        logger.Interface
}

func NewLogHandler(
	listEntriesUC *usecases.ListAuditEntriesUseCase,
	reportUC *usecases.ActivityReportUseCase,
	logger logger.Interface,
) *LogHandler {
	return &LogHandler{
		listEntriesUC: listEntriesUC,
		reportUC:      reportUC,
		logger:        logger,
	}
}

// ListLogs handles GET /admin/logs
func (h *LogHandler) ListLogs(c *gin.Context) {
	cmd := usecases.ListAuditEntriesCommand{
		Actor:  c.Query("actor"),
		Target: c.Query("target"),
		Action: c.Query("action"),
	}
	cmd.From, cmd.To = parseDateRange(c)

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		cmd.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "0")); err == nil {
		cmd.PageSize = size
	}

	result, err := h.listEntriesUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Entries, result.Total, result.Page, result.PageSize)
}

// ActivityReport handles GET /admin/reports/activity. The month/year pair
// narrows the report to one calendar month; explicit date_from/date_to win
// when both are present.
func (h *LogHandler) ActivityReport(c *gin.Context) {
	cmd := usecases.ActivityReportCommand{}
	cmd.From, cmd.To = parseDateRange(c)

	if cmd.From == nil && cmd.To == nil {
		cmd.From, cmd.To = parseMonthRange(c)
	}

	result, err := h.reportUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// parseDateRange reads date_from/date_to query params in YYYY-MM-DD form.
// date_to is inclusive, so it is pushed to the end of that day.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time) {
	var from, to *time.Time
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Millisecond)
			to = &end
		}
	}
	return from, to
}

func parseMonthRange(c *gin.Context) (*time.Time, *time.Time) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1970 {
		return nil, nil
	}

	month := 1
	months := 12
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
		months = 1
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, months, 0).Add(-time.Millisecond)
	return &from, &to
}
