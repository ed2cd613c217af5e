// Package usecases implements attachment upload, retrieval and deletion.
// Files live on disk under a per-ticket directory; the database only holds
// relative paths and metadata.
package usecases

import (
	"io"
)

// FileStorage abstracts the upload directory. All paths are relative to the
// storage root; implementations must reject anything that escapes it.
type FileStorage interface {
	Save(relativePath string, content io.Reader) (int64, error)
	Open(relativePath string) (io.ReadCloser, error)
	Remove(relativePath string) error
	RemoveTicketFiles(ticketID uint) error
}
