package usecases

import (
	"context"
	"io"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type DownloadAttachmentCommand struct {
	AttachmentID uint
	Role         authorization.Role
	Actor        appaudit.Meta
	// Inline requests serve the file for in-browser preview and are not
	// written to the audit log; explicit downloads are.
	Inline bool
}

type DownloadAttachmentResult struct {
	Content  io.ReadCloser
	FileName string
	FileSize int64
	MimeType string
}

type DownloadAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	storage        FileStorage
	recorder       *appaudit.Recorder
	logger         logger.Interface
}

func NewDownloadAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	storage FileStorage,
	recorder *appaudit.Recorder,
	logger logger.Interface,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		recorder:       recorder,
		logger:         logger,
	}
}

// Execute opens the stored file after checking the requester may see the
// ticket it belongs to. The caller owns the returned reader.
func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, cmd DownloadAttachmentCommand) (*DownloadAttachmentResult, error) {
	a, err := uc.attachmentRepo.FindByID(ctx, cmd.AttachmentID)
	if err != nil {
		return nil, err
	}

	t, err := uc.ticketRepo.FindByID(ctx, a.TicketID())
	if err != nil {
		return nil, err
	}
	if !authorization.Authorize(cmd.Role, authorization.RoleOperator) {
		if cmd.Actor.ActorID == nil || t.CreatorID() != *cmd.Actor.ActorID {
			return nil, errors.NewForbiddenError("you can only access attachments of your own tickets")
		}
	}

	content, err := uc.storage.Open(a.FilePath())
	if err != nil {
		uc.logger.Errorw("failed to open attachment file", "path", a.FilePath(), "error", err)
		return nil, errors.NewNotFoundError("attachment file not found")
	}

	if !cmd.Inline {
		ticketID := a.TicketID()
		entry := &audit.Entry{
			TicketID: &ticketID,
			Action:   audit.ActionAttachmentDownload,
			Details:  a.FileName(),
		}
		if err := uc.recorder.Record(ctx, cmd.Actor, entry); err != nil {
			content.Close()
			return nil, err
		}
	}

	return &DownloadAttachmentResult{
		Content:  content,
		FileName: a.FileName(),
		FileSize: a.FileSize(),
		MimeType: a.MimeType(),
	}, nil
}
