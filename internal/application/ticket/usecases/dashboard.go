package usecases

import (
	"context"

	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/shared/logger"
)

type DashboardResult struct {
	Open       int64
	InProgress int64
	Closed     int64
	Total      int64
}

// DashboardUseCase summarizes the ticket queue for the admin landing page.
type DashboardUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewDashboardUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *DashboardUseCase {
	return &DashboardUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardResult, error) {
	counts, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResult{
		Open:       counts.Open,
		InProgress: counts.InProgress,
		Closed:     counts.Closed,
		Total:      counts.Open + counts.InProgress + counts.Closed,
	}, nil
}
