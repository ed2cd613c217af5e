package models

type AttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	UploaderID uint   `gorm:"not null;index"`
	FileName   string `gorm:"size:255;not null"`
	FilePath   string `gorm:"size:500;not null"`
	FileSize   int64  `gorm:"not null"`
	MimeType   string `gorm:"size:100"`
	UploadedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
