package ticket

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Attachment is a file associated with a ticket. Only the storage-relative
// path is kept here; resolving it to an absolute path is the blob storage
// boundary's job.
type Attachment struct {
	id         uint
	ticketID   uint
	uploaderID uint
	fileName   string
	filePath   string
	fileSize   int64
	mimeType   string
	uploadedAt time.Time
}

func NewAttachment(ticketID, uploaderID uint, fileName, filePath string, fileSize int64, mimeType string) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if len(fileName) == 0 {
		return nil, fmt.Errorf("file name is required")
	}
	if err := validateRelativePath(filePath); err != nil {
		return nil, err
	}
	if fileSize <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}

	return &Attachment{
		ticketID:   ticketID,
		uploaderID: uploaderID,
		fileName:   fileName,
		filePath:   filePath,
		fileSize:   fileSize,
		mimeType:   mimeType,
		uploadedAt: time.Now(),
	}, nil
}

func ReconstructAttachment(id, ticketID, uploaderID uint, fileName, filePath string, fileSize int64, mimeType string, uploadedAt time.Time) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	return &Attachment{
		id:         id,
		ticketID:   ticketID,
		uploaderID: uploaderID,
		fileName:   fileName,
		filePath:   filePath,
		fileSize:   fileSize,
		mimeType:   mimeType,
		uploadedAt: uploadedAt,
	}, nil
}

func validateRelativePath(p string) error {
	if len(p) == 0 {
		return fmt.Errorf("file path is required")
	}
	if path.IsAbs(p) || strings.HasPrefix(p, `\`) {
		return fmt.Errorf("file path must be relative")
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return fmt.Errorf("file path must not traverse upward")
		}
	}
	return nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) UploaderID() uint {
	return a.uploaderID
}

func (a *Attachment) FileName() string {
	return a.fileName
}

func (a *Attachment) FilePath() string {
	return a.filePath
}

func (a *Attachment) FileSize() int64 {
	return a.fileSize
}

func (a *Attachment) MimeType() string {
	return a.mimeType
}

func (a *Attachment) UploadedAt() time.Time {
	return a.uploadedAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
