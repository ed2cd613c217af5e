package usecases

import (
	"context"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/application/notification"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID  uint
	Actor     appaudit.Meta
	ActorName string
}

type CloseTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	recorder   *appaudit.Recorder
	dispatcher NotificationDispatcher
	logger     logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	recorder *appaudit.Recorder,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		recorder:   recorder,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Execute closes a ticket and emails its creator. Closing an already closed
// ticket is a no-op: no save, no log entry, no email.
func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*TicketResult, error) {
	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	before := ticket.TakeSnapshot(t, resolveAssigneeName(ctx, uc.userRepo, t.AssigneeID()))

	if !t.Close() {
		return newTicketResult(t), nil
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	after := ticket.TakeSnapshot(t, resolveAssigneeName(ctx, uc.userRepo, t.AssigneeID()))
	if err := uc.recorder.RecordTicketChanges(ctx, cmd.Actor, t.ID(), ticket.Diff(before, after)); err != nil {
		return nil, err
	}

	if err := uc.dispatcher.Dispatch(ctx, cmd.Actor, notification.Event{
		Kind:      notification.EventTicketClosed,
		Ticket:    t,
		ActorName: cmd.ActorName,
	}); err != nil {
		uc.logger.Warnw("ticket closed but notification failed", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket closed", "ticket_id", t.ID())
	return newTicketResult(t), nil
}
