package usecases

import (
	"context"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/application/notification"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID uint
	Actor      appaudit.Meta
	ActorName  string
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	recorder   *appaudit.Recorder
	dispatcher NotificationDispatcher
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	recorder *appaudit.Recorder,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		recorder:   recorder,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Execute assigns an open ticket to a staff member and moves it to
// in_progress. The field changes are logged first, then the assignee is
// emailed; a failed email leaves the assignment in place.
func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*TicketResult, error) {
	assignee, err := uc.userRepo.FindByID(ctx, cmd.AssigneeID)
	if err != nil {
		return nil, err
	}
	if !assignee.Role().IsOperator() && !assignee.Role().IsAdmin() {
		return nil, errors.NewValidationError("assignee must be an operator or admin")
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	before := ticket.TakeSnapshot(t, resolveAssigneeName(ctx, uc.userRepo, t.AssigneeID()))

	if err := t.Assign(cmd.AssigneeID); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	after := ticket.TakeSnapshot(t, assignee.DisplayName())
	if err := uc.recorder.RecordTicketChanges(ctx, cmd.Actor, t.ID(), ticket.Diff(before, after)); err != nil {
		return nil, err
	}

	if err := uc.dispatcher.Dispatch(ctx, cmd.Actor, notification.Event{
		Kind:      notification.EventTicketAssigned,
		Ticket:    t,
		ActorName: cmd.ActorName,
	}); err != nil {
		uc.logger.Warnw("ticket assigned but notification failed", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket assigned", "ticket_id", t.ID(), "assignee_id", cmd.AssigneeID)
	return newTicketResult(t), nil
}
