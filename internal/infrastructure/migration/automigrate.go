package migration

import (
	"ticketsys/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.MessageModel{},
		&models.AttachmentModel{},
		&models.AuditLogModel{},
	}
}
