package mappers

import (
	"time"

	"ticketsys/internal/domain/audit"
	"ticketsys/internal/infrastructure/persistence/models"
)

type AuditLogMapper interface {
	ToModel(e *audit.Entry) *models.AuditLogModel
	ToDomain(model *models.AuditLogModel) *audit.Entry
}

type AuditLogMapperImpl struct{}

func NewAuditLogMapper() AuditLogMapper {
	return &AuditLogMapperImpl{}
}

func (m *AuditLogMapperImpl) ToModel(e *audit.Entry) *models.AuditLogModel {
	return &models.AuditLogModel{
		ID:           e.ID,
		ActorID:      e.ActorID,
		TargetUserID: e.TargetUserID,
		TicketID:     e.TicketID,
		Action:       string(e.Action),
		Details:      e.Details,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
		Timestamp:    e.Timestamp.UnixMilli(),
	}
}

func (m *AuditLogMapperImpl) ToDomain(model *models.AuditLogModel) *audit.Entry {
	return &audit.Entry{
		ID:           model.ID,
		ActorID:      model.ActorID,
		TargetUserID: model.TargetUserID,
		TicketID:     model.TicketID,
		Action:       audit.Action(model.Action),
		Details:      model.Details,
		IPAddress:    model.IPAddress,
		UserAgent:    model.UserAgent,
		Timestamp:    time.UnixMilli(model.Timestamp),
	}
}
