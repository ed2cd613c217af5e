package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/infrastructure/persistence/mappers"
	"ticketsys/internal/infrastructure/persistence/models"
	"ticketsys/internal/shared/db"
	"ticketsys/internal/shared/logger"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewMessageRepository(db *gorm.DB, logger logger.Interface) ticket.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *MessageRepositoryImpl) Save(ctx context.Context, m *ticket.Message) error {
	model := r.mapper.MessageToModel(m)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create ticket message", "ticket_id", m.TicketID(), "error", err)
		return fmt.Errorf("failed to create ticket message: %w", err)
	}

	if err := m.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set message ID: %w", err)
	}
	return nil
}

func (r *MessageRepositoryImpl) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var rows []*models.MessageModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Order("created_at ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list ticket messages", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list ticket messages: %w", err)
	}

	messages := make([]*ticket.Message, 0, len(rows))
	for _, row := range rows {
		m, err := r.mapper.MessageToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map ticket message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *MessageRepositoryImpl) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.MessageModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete ticket messages", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to delete ticket messages: %w", err)
	}
	return nil
}
