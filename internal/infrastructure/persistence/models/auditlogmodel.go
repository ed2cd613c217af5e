package models

// AuditLogModel rows are append-only. Actor, target and ticket references
// are nullable on purpose: entries outlive the rows they mention.
type AuditLogModel struct {
	ID           uint   `gorm:"primaryKey"`
	ActorID      *uint  `gorm:"index"`
	TargetUserID *uint  `gorm:"index"`
	TicketID     *uint  `gorm:"index"`
	Action       string `gorm:"size:50;not null;index"`
	Details      string `gorm:"type:text"`
	IPAddress    string `gorm:"size:45"`
	UserAgent    string `gorm:"size:255"`
	Timestamp    int64  `gorm:"not null;index"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
