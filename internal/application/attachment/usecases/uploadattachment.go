package usecases

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

// MaxFileSize is the upload cap, checked before any byte hits the disk.
const MaxFileSize = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type UploadAttachmentCommand struct {
	TicketID uint
	FileName string
	Size     int64
	MimeType string
	Content  io.Reader
	Role     authorization.Role
	Actor    appaudit.Meta
}

type AttachmentResult struct {
	ID       uint
	TicketID uint
	FileName string
	FileSize int64
	MimeType string
}

type UploadAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	storage        FileStorage
	recorder       *appaudit.Recorder
	logger         logger.Interface
}

func NewUploadAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	storage FileStorage,
	recorder *appaudit.Recorder,
	logger logger.Interface,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		recorder:       recorder,
		logger:         logger,
	}
}

// Execute stores the file under the ticket's directory and records the
// upload. Extension and size are rejected before anything is written.
func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, cmd UploadAttachmentCommand) (*AttachmentResult, error) {
	fileName := filepath.Base(strings.TrimSpace(cmd.FileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, errors.NewValidationError("file name is required")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return nil, errors.NewValidationError("file type not allowed: only PDF, JPG and PNG are accepted")
	}
	if cmd.Size > MaxFileSize {
		return nil, errors.NewValidationError("file too large: maximum size is 10MB")
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if !uc.canAccess(t, cmd) {
		return nil, errors.NewForbiddenError("you can only attach files to your own tickets")
	}

	relativePath := path.Join(fmt.Sprintf("ticket_%d", cmd.TicketID), fileName)

	// LimitReader guards against clients lying about the declared size.
	written, err := uc.storage.Save(relativePath, io.LimitReader(cmd.Content, MaxFileSize+1))
	if err != nil {
		uc.logger.Errorw("failed to store attachment", "path", relativePath, "error", err)
		return nil, errors.NewInternalError("failed to store attachment")
	}
	if written > MaxFileSize {
		_ = uc.storage.Remove(relativePath)
		return nil, errors.NewValidationError("file too large: maximum size is 10MB")
	}

	a, err := ticket.NewAttachment(cmd.TicketID, uc.actorID(cmd), fileName, relativePath, written, cmd.MimeType)
	if err != nil {
		_ = uc.storage.Remove(relativePath)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Save(ctx, a); err != nil {
		_ = uc.storage.Remove(relativePath)
		uc.logger.Errorw("failed to save attachment record", "path", relativePath, "error", err)
		return nil, err
	}

	ticketID := cmd.TicketID
	entry := &audit.Entry{
		TicketID: &ticketID,
		Action:   audit.ActionAttachmentUpload,
		Details:  "File: " + fileName,
	}
	if err := uc.recorder.Record(ctx, cmd.Actor, entry); err != nil {
		return nil, err
	}

	return &AttachmentResult{
		ID:       a.ID(),
		TicketID: a.TicketID(),
		FileName: a.FileName(),
		FileSize: a.FileSize(),
		MimeType: a.MimeType(),
	}, nil
}

func (uc *UploadAttachmentUseCase) canAccess(t *ticket.Ticket, cmd UploadAttachmentCommand) bool {
	if authorization.Authorize(cmd.Role, authorization.RoleOperator) {
		return true
	}
	return cmd.Actor.ActorID != nil && t.CreatorID() == *cmd.Actor.ActorID
}

func (uc *UploadAttachmentUseCase) actorID(cmd UploadAttachmentCommand) uint {
	if cmd.Actor.ActorID == nil {
		return 0
	}
	return *cmd.Actor.ActorID
}
