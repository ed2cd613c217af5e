package usecases

import (
	"context"
	"strings"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/application/notification"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	vo "ticketsys/internal/domain/ticket/valueobjects"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Priority    string
	Actor       appaudit.Meta
	ActorName   string
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	recorder   *appaudit.Recorder
	dispatcher NotificationDispatcher
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	recorder *appaudit.Recorder,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		recorder:   recorder,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Execute persists the new ticket, logs its creation, then notifies staff.
// The creation entry is written before any email goes out; a failed
// notification is logged but does not undo the created ticket.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*TicketResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Actor.ActorID == nil {
		return nil, errors.NewUnauthorizedError("missing authenticated user")
	}

	t, err := ticket.NewTicket(cmd.Title, cmd.Description, priority, *cmd.Actor.ActorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	ticketID := t.ID()
	entry := &audit.Entry{
		TicketID: &ticketID,
		Action:   audit.ActionTicketCreate,
		Details:  audit.BuildDetails("", "", "", "Titolo: "+t.Title()),
	}
	if err := uc.recorder.Record(ctx, cmd.Actor, entry); err != nil {
		return nil, err
	}

	if err := uc.dispatcher.Dispatch(ctx, cmd.Actor, notification.Event{
		Kind:      notification.EventTicketCreated,
		Ticket:    t,
		ActorName: cmd.ActorName,
	}); err != nil {
		uc.logger.Warnw("ticket created but notification failed", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket created", "ticket_id", t.ID(), "creator_id", t.CreatorID())
	return newTicketResult(t), nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if strings.TrimSpace(cmd.Title) == "" {
		return errors.NewValidationError("title is required")
	}
	if strings.TrimSpace(cmd.Description) == "" {
		return errors.NewValidationError("description is required")
	}
	if cmd.Priority == "" {
		return errors.NewValidationError("priority is required")
	}
	return nil
}
