package models

type TicketModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	Priority    string `gorm:"size:20;not null;index"`
	Status      string `gorm:"size:20;not null;index"`
	CreatorID   uint   `gorm:"not null;index"`
	AssigneeID  *uint  `gorm:"index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type MessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	SenderID  uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (MessageModel) TableName() string {
	return "ticket_messages"
}
