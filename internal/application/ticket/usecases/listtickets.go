package usecases

import (
	"context"
	"time"

	"ticketsys/internal/domain/ticket"
	vo "ticketsys/internal/domain/ticket/valueobjects"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListTicketsCommand struct {
	RequesterID uint
	Role        authorization.Role

	Statuses   []string
	Priorities []string
	Unassigned bool
	AssigneeID *uint
	Title      string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

type ListTicketsResult struct {
	Tickets  []*TicketResult
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute lists tickets scoped by role: plain users get their own tickets
// regardless of the filters they pass, staff get the full set.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error) {
	filter, err := uc.buildFilter(cmd)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	result := &ListTicketsResult{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, t := range tickets {
		result.Tickets = append(result.Tickets, newTicketResult(t))
	}
	return result, nil
}

func (uc *ListTicketsUseCase) buildFilter(cmd ListTicketsCommand) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		Unassigned: cmd.Unassigned,
		AssigneeID: cmd.AssigneeID,
		Title:      cmd.Title,
		DateFrom:   cmd.DateFrom,
		DateTo:     cmd.DateTo,
		SortBy:     cmd.SortBy,
		SortOrder:  cmd.SortOrder,
		Page:       cmd.Page,
		PageSize:   cmd.PageSize,
	}

	if !authorization.Authorize(cmd.Role, authorization.RoleOperator) {
		requesterID := cmd.RequesterID
		filter.CreatorID = &requesterID
		filter.AssigneeID = nil
		filter.Unassigned = false
	}

	for _, s := range cmd.Statuses {
		status, err := vo.NewTicketStatus(s)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError(err.Error())
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, p := range cmd.Priorities {
		priority, err := vo.NewPriority(p)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError(err.Error())
		}
		filter.Priorities = append(filter.Priorities, priority)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return filter, nil
}
