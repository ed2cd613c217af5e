package usecases

import (
	"context"

	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type GetTicketCommand struct {
	TicketID    uint
	RequesterID uint
	Role        authorization.Role
}

// GetTicketResult is the full detail view: the ticket plus its conversation
// and attachment metadata.
type GetTicketResult struct {
	Ticket      *TicketResult
	Messages    []*MessageResult
	Attachments []*AttachmentInfo
}

type AttachmentInfo struct {
	ID         uint
	FileName   string
	FileSize   int64
	MimeType   string
	UploaderID uint
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	messageRepo    ticket.MessageRepository
	attachmentRepo ticket.AttachmentRepository
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

// Execute loads a ticket detail. Plain users only see tickets they created;
// operators and admins see everything.
func (uc *GetTicketUseCase) Execute(ctx context.Context, cmd GetTicketCommand) (*GetTicketResult, error) {
	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if !authorization.Authorize(cmd.Role, authorization.RoleOperator) && t.CreatorID() != cmd.RequesterID {
		return nil, errors.NewForbiddenError("you can only view your own tickets")
	}

	messages, err := uc.messageRepo.FindByTicketID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	attachments, err := uc.attachmentRepo.FindByTicketID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	result := &GetTicketResult{Ticket: newTicketResult(t)}
	for _, m := range messages {
		result.Messages = append(result.Messages, newMessageResult(m))
	}
	for _, a := range attachments {
		result.Attachments = append(result.Attachments, &AttachmentInfo{
			ID:         a.ID(),
			FileName:   a.FileName(),
			FileSize:   a.FileSize(),
			MimeType:   a.MimeType(),
			UploaderID: a.UploaderID(),
		})
	}
	return result, nil
}
