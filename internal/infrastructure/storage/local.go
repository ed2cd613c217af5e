// Package storage implements the attachment file store on the local
// filesystem. The database only ever sees paths relative to the root.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStorage{root: absRoot}, nil
}

// resolve joins the relative path to the root and rejects anything that
// would escape it.
func (s *LocalStorage) resolve(relativePath string) (string, error) {
	if filepath.IsAbs(relativePath) {
		return "", fmt.Errorf("absolute paths are not allowed: %s", relativePath)
	}
	full := filepath.Join(s.root, filepath.FromSlash(relativePath))
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes storage root: %s", relativePath)
	}
	return full, nil
}

// Save writes the content to the relative path, creating parent directories
// as needed, and returns the number of bytes written.
func (s *LocalStorage) Save(relativePath string, content io.Reader) (int64, error) {
	full, err := s.resolve(relativePath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return 0, fmt.Errorf("failed to create attachment directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("failed to create attachment file: %w", err)
	}

	written, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(full)
		return 0, fmt.Errorf("failed to write attachment file: %w", err)
	}
	return written, nil
}

func (s *LocalStorage) Open(relativePath string) (io.ReadCloser, error) {
	full, err := s.resolve(relativePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment file: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Remove(relativePath string) error {
	full, err := s.resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment file: %w", err)
	}
	return nil
}

// RemoveTicketFiles deletes the whole per-ticket directory.
func (s *LocalStorage) RemoveTicketFiles(ticketID uint) error {
	full, err := s.resolve(fmt.Sprintf("ticket_%d", ticketID))
	if err != nil {
		return err
	}
	if err := os.RemoveAll(full); err != nil {
		return fmt.Errorf("failed to remove ticket directory: %w", err)
	}
	return nil
}
