package usecases

import (
	"context"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type ReassignTicketCommand struct {
	TicketID      uint
	NewAssigneeID uint
	Actor         appaudit.Meta
}

type ReassignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	recorder   *appaudit.Recorder
	logger     logger.Interface
}

func NewReassignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	recorder *appaudit.Recorder,
	logger logger.Interface,
) *ReassignTicketUseCase {
	return &ReassignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		recorder:   recorder,
		logger:     logger,
	}
}

// Execute hands a ticket to a different operator regardless of its current
// status. Besides the per-field entries, a summary TICKET REASSIGNED entry
// records the handover itself, targeting the new operator. No email goes
// out; reassignment is an internal move.
func (uc *ReassignTicketUseCase) Execute(ctx context.Context, cmd ReassignTicketCommand) (*TicketResult, error) {
	newAssignee, err := uc.userRepo.FindByID(ctx, cmd.NewAssigneeID)
	if err != nil {
		return nil, err
	}
	if !newAssignee.Role().IsOperator() && !newAssignee.Role().IsAdmin() {
		return nil, errors.NewValidationError("assignee must be an operator or admin")
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	oldAssigneeName := resolveAssigneeName(ctx, uc.userRepo, t.AssigneeID())
	before := ticket.TakeSnapshot(t, oldAssigneeName)

	if err := t.Reassign(cmd.NewAssigneeID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	after := ticket.TakeSnapshot(t, newAssignee.DisplayName())
	if err := uc.recorder.RecordTicketChanges(ctx, cmd.Actor, t.ID(), ticket.Diff(before, after)); err != nil {
		return nil, err
	}

	oldLabel := oldAssigneeName
	if oldLabel == "" {
		oldLabel = ticket.NoAssignee
	}
	ticketID := t.ID()
	targetID := newAssignee.ID()
	entry := &audit.Entry{
		TargetUserID: &targetID,
		TicketID:     &ticketID,
		Action:       audit.ActionTicketReassigned,
		Details:      "Assegnazione modificata: PRIMA = " + oldLabel + " → DOPO = " + newAssignee.DisplayName(),
	}
	if err := uc.recorder.Record(ctx, cmd.Actor, entry); err != nil {
		return nil, err
	}

	uc.logger.Infow("ticket reassigned", "ticket_id", t.ID(), "assignee_id", cmd.NewAssigneeID)
	return newTicketResult(t), nil
}
