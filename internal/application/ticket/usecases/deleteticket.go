package usecases

import (
	"context"
	"fmt"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
	Actor    appaudit.Meta
}

type DeleteTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	messageRepo    ticket.MessageRepository
	attachmentRepo ticket.AttachmentRepository
	auditRepo      audit.Repository
	recorder       *appaudit.Recorder
	txManager      TransactionManager
	files          FileRemover
	logger         logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	auditRepo audit.Repository,
	recorder *appaudit.Recorder,
	txManager TransactionManager,
	files FileRemover,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:     ticketRepo,
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		auditRepo:      auditRepo,
		recorder:       recorder,
		txManager:      txManager,
		files:          files,
		logger:         logger,
	}
}

// Execute removes a ticket with its messages and attachments in one
// transaction. Audit entries referencing the ticket are detached, not
// deleted; after the delete they resolve to a null ticket rather than a
// missing row. The deletion entry itself carries no ticket reference.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.auditRepo.DetachTicket(txCtx, cmd.TicketID); err != nil {
			return err
		}
		if err := uc.messageRepo.DeleteByTicketID(txCtx, cmd.TicketID); err != nil {
			return err
		}
		if err := uc.attachmentRepo.DeleteByTicketID(txCtx, cmd.TicketID); err != nil {
			return err
		}
		if err := uc.ticketRepo.Delete(txCtx, cmd.TicketID); err != nil {
			return err
		}

		entry := &audit.Entry{
			Action:  audit.ActionTicketDelete,
			Details: fmt.Sprintf("Ticket #%d eliminato\nTitolo: %s", t.ID(), t.Title()),
		}
		return uc.recorder.Record(txCtx, cmd.Actor, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	// Stored files go last; a leftover directory is recoverable, a dangling
	// database row is not.
	if err := uc.files.RemoveTicketFiles(cmd.TicketID); err != nil {
		uc.logger.Warnw("ticket deleted but file cleanup failed", "ticket_id", cmd.TicketID, "error", err)
	}

	uc.logger.Infow("ticket deleted", "ticket_id", cmd.TicketID)
	return nil
}
