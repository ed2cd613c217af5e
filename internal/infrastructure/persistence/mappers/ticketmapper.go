package mappers

import (
	"fmt"
	"time"

	"ticketsys/internal/domain/ticket"
	vo "ticketsys/internal/domain/ticket/valueobjects"
	"ticketsys/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	MessageToModel(m *ticket.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*ticket.Message, error)
	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		CreatedAt:   t.CreatedAt().UnixMilli(),
		UpdatedAt:   t.UpdatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority in storage: %w", err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in storage: %w", err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Title,
		model.Description,
		priority,
		status,
		model.CreatorID,
		model.AssigneeID,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:        msg.ID(),
		TicketID:  msg.TicketID(),
		SenderID:  msg.SenderID(),
		Text:      msg.Text(),
		CreatedAt: msg.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) MessageToDomain(model *models.MessageModel) (*ticket.Message, error) {
	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.SenderID,
		model.Text,
		time.UnixMilli(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		UploaderID: a.UploaderID(),
		FileName:   a.FileName(),
		FilePath:   a.FilePath(),
		FileSize:   a.FileSize(),
		MimeType:   a.MimeType(),
		UploadedAt: a.UploadedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.UploaderID,
		model.FileName,
		model.FilePath,
		model.FileSize,
		model.MimeType,
		time.UnixMilli(model.UploadedAt),
	)
}
