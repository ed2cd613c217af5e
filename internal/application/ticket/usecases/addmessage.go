package usecases

import (
	"context"

	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type AddMessageCommand struct {
	TicketID uint
	SenderID uint
	Role     authorization.Role
	Text     string
}

type AddMessageUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	logger      logger.Interface
}

func NewAddMessageUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	logger logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// Execute appends a message to the ticket conversation. Closed tickets no
// longer accept messages.
func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*MessageResult, error) {
	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if !authorization.Authorize(cmd.Role, authorization.RoleOperator) && t.CreatorID() != cmd.SenderID {
		return nil, errors.NewForbiddenError("you can only comment on your own tickets")
	}
	if t.Status().IsClosed() {
		return nil, errors.NewConflictError("ticket is closed")
	}

	m, err := ticket.NewMessage(cmd.TicketID, cmd.SenderID, cmd.Text)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.messageRepo.Save(ctx, m); err != nil {
		uc.logger.Errorw("failed to save message", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return newMessageResult(m), nil
}
