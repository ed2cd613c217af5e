package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/infrastructure/persistence/mappers"
	"ticketsys/internal/infrastructure/persistence/models"
	"ticketsys/internal/shared/db"
	apperrors "ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type AttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewAttachmentRepository(db *gorm.DB, logger logger.Interface) ticket.AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *AttachmentRepositoryImpl) Save(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create attachment", "ticket_id", a.TicketID(), "file_name", a.FileName(), "error", err)
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set attachment ID: %w", err)
	}
	return nil
}

func (r *AttachmentRepositoryImpl) FindByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	var model models.AttachmentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("attachment not found")
		}
		r.logger.Errorw("failed to find attachment", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.AttachmentToDomain(&model)
}

func (r *AttachmentRepositoryImpl) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var rows []*models.AttachmentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Order("uploaded_at ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list attachments", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, 0, len(rows))
	for _, row := range rows {
		a, err := r.mapper.AttachmentToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.AttachmentModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete attachment", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("attachment not found")
	}
	return nil
}

func (r *AttachmentRepositoryImpl) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.AttachmentModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete attachments", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}
