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

type DeleteUserCommand struct {
	UserID uint
	Actor  appaudit.Meta
}

// FileRemover deletes the stored files belonging to a ticket.
type FileRemover interface {
	RemoveTicketFiles(ticketID uint) error
}

type DeleteUserUseCase struct {
	userRepo       user.Repository
	ticketRepo     ticket.TicketRepository
	messageRepo    ticket.MessageRepository
	attachmentRepo ticket.AttachmentRepository
	auditRepo      audit.Repository
	recorder       *appaudit.Recorder
	txManager      TransactionManager
	files          FileRemover
	logger         logger.Interface
}

func NewDeleteUserUseCase(
	userRepo user.Repository,
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	auditRepo audit.Repository,
	recorder *appaudit.Recorder,
	txManager TransactionManager,
	files FileRemover,
	logger logger.Interface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:       userRepo,
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

// Execute removes an account. The user's own tickets go with it, tickets
// merely assigned to them are released, and audit entries mentioning the
// user are detached rather than deleted. Admins cannot delete themselves.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	if cmd.Actor.ActorID != nil && *cmd.Actor.ActorID == cmd.UserID {
		return errors.NewValidationError("you cannot delete your own account")
	}

	u, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	creatorID := cmd.UserID
	owned, _, err := uc.ticketRepo.List(ctx, ticket.TicketFilter{CreatorID: &creatorID})
	if err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// The target reference gets detached below with the rest; the
		// username survives in the details text.
		targetID := u.ID()
		entry := &audit.Entry{
			TargetUserID: &targetID,
			Action:       audit.ActionUserDelete,
			Details:      "Utente eliminato: " + u.Username(),
		}
		if err := uc.recorder.Record(txCtx, cmd.Actor, entry); err != nil {
			return err
		}

		for _, t := range owned {
			if err := uc.auditRepo.DetachTicket(txCtx, t.ID()); err != nil {
				return err
			}
			if err := uc.messageRepo.DeleteByTicketID(txCtx, t.ID()); err != nil {
				return err
			}
			if err := uc.attachmentRepo.DeleteByTicketID(txCtx, t.ID()); err != nil {
				return err
			}
			if err := uc.ticketRepo.Delete(txCtx, t.ID()); err != nil {
				return err
			}
		}

		if err := uc.ticketRepo.UnassignByAssignee(txCtx, cmd.UserID); err != nil {
			return err
		}
		if err := uc.auditRepo.DetachUser(txCtx, cmd.UserID); err != nil {
			return err
		}
		return uc.userRepo.Delete(txCtx, cmd.UserID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", cmd.UserID, "error", err)
		return err
	}

	for _, t := range owned {
		if err := uc.files.RemoveTicketFiles(t.ID()); err != nil {
			uc.logger.Warnw("user deleted but file cleanup failed", "ticket_id", t.ID(), "error", err)
		}
	}

	uc.logger.Infow("user deleted", "user_id", cmd.UserID, "username", u.Username())
	return nil
}
