package ticket

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ticketsys/internal/application/ticket/usecases"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Priority    string `json:"priority" binding:"required"`
}

type UpdateTicketRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type AssignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

type AddMessageRequest struct {
	Text string `json:"text" binding:"required,max=10000"`
}

type ListTicketsRequest struct {
	Page       int
	PageSize   int
	Statuses   []string
	Priorities []string
	Unassigned bool
	AssigneeID *uint
	Title      string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string
	SortOrder  string
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListTicketsRequest{
		Page:      page,
		PageSize:  pageSize,
		Title:     c.Query("title"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		req.Statuses = []string{status}
	}
	if priority := c.Query("priority"); priority != "" {
		req.Priorities = []string{priority}
	}
	if c.Query("unassigned") == "true" {
		req.Unassigned = true
	}

	if assigneeIDStr := c.Query("assignee_id"); assigneeIDStr != "" {
		assigneeID, err := strconv.ParseUint(assigneeIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("Invalid assignee_id")
		}
		id := uint(assigneeID)
		req.AssigneeID = &id
	}

	if from, err := parseDateQuery(c, "date_from"); err != nil {
		return nil, err
	} else {
		req.DateFrom = from
	}
	if to, err := parseDateQuery(c, "date_to"); err != nil {
		return nil, err
	} else {
		req.DateTo = to
	}

	return req, nil
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.NewValidationError("Invalid " + name + ", expected YYYY-MM-DD")
	}
	if name == "date_to" {
		// Inclusive upper bound: end of the requested day.
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}

func (r *ListTicketsRequest) ToCommand(requesterID uint, role authorization.Role) usecases.ListTicketsCommand {
	cmd := usecases.ListTicketsCommand{
		RequesterID: requesterID,
		Role:        role,
		Statuses:    r.Statuses,
		Priorities:  r.Priorities,
		Unassigned:  r.Unassigned,
		AssigneeID:  r.AssigneeID,
		Title:       r.Title,
		DateFrom:    r.DateFrom,
		DateTo:      r.DateTo,
		SortBy:      r.SortBy,
		SortOrder:   r.SortOrder,
		Page:        r.Page,
		PageSize:    r.PageSize,
	}
	return cmd
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("Invalid ticket ID")
	}
	return uint(id), nil
}
