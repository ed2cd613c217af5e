package usecases

import (
	"context"
	"strings"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/ticket"
	vo "ticketsys/internal/domain/ticket/valueobjects"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

// UpdateTicketCommand carries the edited fields. Nil pointers leave the
// field untouched.
type UpdateTicketCommand struct {
	TicketID    uint
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	Actor       appaudit.Meta
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	recorder   *appaudit.Recorder
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	recorder *appaudit.Recorder,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		recorder:   recorder,
		logger:     logger,
	}
}

// Execute edits a ticket and logs one entry per field that actually
// changed. Edits never send email; only the explicit assign and close
// operations notify.
func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*TicketResult, error) {
	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	before := ticket.TakeSnapshot(t, resolveAssigneeName(ctx, uc.userRepo, t.AssigneeID()))

	if err := uc.applyChanges(t, cmd); err != nil {
		return nil, err
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	after := ticket.TakeSnapshot(t, resolveAssigneeName(ctx, uc.userRepo, t.AssigneeID()))
	changes := ticket.Diff(before, after)
	if err := uc.recorder.RecordTicketChanges(ctx, cmd.Actor, t.ID(), changes); err != nil {
		return nil, err
	}

	return newTicketResult(t), nil
}

func (uc *UpdateTicketUseCase) applyChanges(t *ticket.Ticket, cmd UpdateTicketCommand) error {
	if cmd.Title != nil {
		if strings.TrimSpace(*cmd.Title) == "" {
			return errors.NewValidationError("title cannot be empty")
		}
		if err := t.SetTitle(*cmd.Title); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		if err := t.SetDescription(*cmd.Description); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Priority != nil {
		priority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := t.SetPriority(priority); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Status != nil {
		status, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := t.SetStatus(status); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	return nil
}
