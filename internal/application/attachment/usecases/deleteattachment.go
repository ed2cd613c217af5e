package usecases

import (
	"context"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type DeleteAttachmentCommand struct {
	AttachmentID uint
	Actor        appaudit.Meta
}

type DeleteAttachmentUseCase struct {
	attachmentRepo ticket.AttachmentRepository
	storage        FileStorage
	recorder       *appaudit.Recorder
	logger         logger.Interface
}

func NewDeleteAttachmentUseCase(
	attachmentRepo ticket.AttachmentRepository,
	storage FileStorage,
	recorder *appaudit.Recorder,
	logger logger.Interface,
) *DeleteAttachmentUseCase {
	return &DeleteAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		storage:        storage,
		recorder:       recorder,
		logger:         logger,
	}
}

// Execute removes the physical file first. If that fails the database record
// survives, so the attachment never points at a file that is secretly gone
// while the row pretends otherwise.
func (uc *DeleteAttachmentUseCase) Execute(ctx context.Context, cmd DeleteAttachmentCommand) error {
	a, err := uc.attachmentRepo.FindByID(ctx, cmd.AttachmentID)
	if err != nil {
		return err
	}

	if err := uc.storage.Remove(a.FilePath()); err != nil {
		uc.logger.Errorw("failed to remove attachment file", "path", a.FilePath(), "error", err)
		return errors.NewInternalError("failed to remove attachment file")
	}

	if err := uc.attachmentRepo.Delete(ctx, cmd.AttachmentID); err != nil {
		uc.logger.Errorw("failed to delete attachment record", "attachment_id", cmd.AttachmentID, "error", err)
		return err
	}

	ticketID := a.TicketID()
	entry := &audit.Entry{
		TicketID: &ticketID,
		Action:   audit.ActionAttachmentDelete,
		Details:  "File: " + a.FileName(),
	}
	return uc.recorder.Record(ctx, cmd.Actor, entry)
}
