package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketsys/internal/application/ticket/usecases"
	"ticketsys/internal/interfaces/http/handlers"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/constants"
	"ticketsys/internal/shared/logger"
	"ticketsys/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC   *usecases.CreateTicketUseCase
	updateTicketUC   *usecases.UpdateTicketUseCase
	assignTicketUC   *usecases.AssignTicketUseCase
	reassignTicketUC *usecases.ReassignTicketUseCase
	closeTicketUC    *usecases.CloseTicketUseCase
	deleteTicketUC   *usecases.DeleteTicketUseCase
	getTicketUC      *usecases.GetTicketUseCase
	listTicketsUC    *usecases.ListTicketsUseCase
	addMessageUC     *usecases.AddMessageUseCase
	logger           logger.Interface
}

func NewTicketHandler(
	createTicketUC *usecases.CreateTicketUseCase,
	updateTicketUC *usecases.UpdateTicketUseCase,
	assignTicketUC *usecases.AssignTicketUseCase,
	reassignTicketUC *usecases.ReassignTicketUseCase,
	closeTicketUC *usecases.CloseTicketUseCase,
	deleteTicketUC *usecases.DeleteTicketUseCase,
	getTicketUC *usecases.GetTicketUseCase,
	listTicketsUC *usecases.ListTicketsUseCase,
	addMessageUC *usecases.AddMessageUseCase,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:   createTicketUC,
		updateTicketUC:   updateTicketUC,
		assignTicketUC:   assignTicketUC,
		reassignTicketUC: reassignTicketUC,
		closeTicketUC:    closeTicketUC,
		deleteTicketUC:   deleteTicketUC,
		getTicketUC:      getTicketUC,
		listTicketsUC:    listTicketsUC,
		addMessageUC:     addMessageUC,
		logger:           logger,
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Actor:       handlers.ActorMeta(c),
		ActorName:   c.GetString(constants.ContextKeyUsername),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	req, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := req.ToCommand(handlers.CurrentUserID(c), currentRole(c))
	result, err := h.listTicketsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketCommand{
		TicketID:    ticketID,
		RequesterID: handlers.CurrentUserID(c),
		Role:        currentRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PATCH /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID:    ticketID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Actor:       handlers.ActorMeta(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// AssignTicket handles POST /tickets/:id/assign
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
		Actor:      handlers.ActorMeta(c),
		ActorName:  c.GetString(constants.ContextKeyUsername),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// ReassignTicket handles POST /tickets/:id/reassign
func (h *TicketHandler) ReassignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.reassignTicketUC.Execute(c.Request.Context(), usecases.ReassignTicketCommand{
		TicketID:      ticketID,
		NewAssigneeID: req.AssigneeID,
		Actor:         handlers.ActorMeta(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket reassigned successfully", result)
}

// CloseTicket handles POST /tickets/:id/close
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.closeTicketUC.Execute(c.Request.Context(), usecases.CloseTicketCommand{
		TicketID:  ticketID,
		Actor:     handlers.ActorMeta(c),
		ActorName: c.GetString(constants.ContextKeyUsername),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID: ticketID,
		Actor:    handlers.ActorMeta(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AddMessage handles POST /tickets/:id/messages
func (h *TicketHandler) AddMessage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.addMessageUC.Execute(c.Request.Context(), usecases.AddMessageCommand{
		TicketID: ticketID,
		SenderID: handlers.CurrentUserID(c),
		Role:     currentRole(c),
		Text:     req.Text,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message added successfully")
}

func currentRole(c *gin.Context) authorization.Role {
	return authorization.ParseRole(c.GetString(constants.ContextKeyUserRole))
}
