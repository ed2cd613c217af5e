package usecases

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	vo "ticketsys/internal/domain/ticket/valueobjects"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type mockTicketRepository struct {
	tickets map[uint]*ticket.Ticket
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error { return nil }

func (m *mockTicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if t, ok := m.tickets[id]; ok {
		return t, nil
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepository) Exists(ctx context.Context, id uint) (bool, error) {
	_, ok := m.tickets[id]
	return ok, nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error { return nil }
func (m *mockTicketRepository) UnassignByAssignee(ctx context.Context, assigneeID uint) error {
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context) (ticket.StatusCounts, error) {
	return ticket.StatusCounts{}, nil
}

type mockAttachmentRepository struct {
	attachments map[uint]*ticket.Attachment
	nextID      uint
	saveFunc    func(ctx context.Context, a *ticket.Attachment) error
}

func newMockAttachmentRepository() *mockAttachmentRepository {
	return &mockAttachmentRepository{attachments: map[uint]*ticket.Attachment{}, nextID: 1}
}

func (m *mockAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	if a.ID() == 0 {
		if err := a.SetID(m.nextID); err != nil {
			return err
		}
		m.nextID++
	}
	m.attachments[a.ID()] = a
	return nil
}

func (m *mockAttachmentRepository) FindByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	if a, ok := m.attachments[id]; ok {
		return a, nil
	}
	return nil, errors.NewNotFoundError("attachment not found")
}

func (m *mockAttachmentRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	return nil, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, id uint) error {
	delete(m.attachments, id)
	return nil
}

func (m *mockAttachmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	return nil
}

type mockAuditRepository struct {
	entries []*audit.Entry
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func (m *mockAuditRepository) CountByAction(ctx context.Context, from, to *time.Time) ([]audit.ActionCount, error) {
	return nil, nil
}

func (m *mockAuditRepository) CountByActor(ctx context.Context, actions []audit.Action, from, to *time.Time) ([]audit.ActorCount, error) {
	return nil, nil
}

func (m *mockAuditRepository) DetachTicket(ctx context.Context, ticketID uint) error { return nil }
func (m *mockAuditRepository) DetachUser(ctx context.Context, userID uint) error    { return nil }

type mockStorage struct {
	files      map[string][]byte
	saveErr    error
	removeErr  error
	removedAll []uint
}

func newMockStorage() *mockStorage {
	return &mockStorage{files: map[string][]byte{}}
}

func (m *mockStorage) Save(relativePath string, content io.Reader) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return 0, err
	}
	m.files[relativePath] = data
	return int64(len(data)), nil
}

func (m *mockStorage) Open(relativePath string) (io.ReadCloser, error) {
	data, ok := m.files[relativePath]
	if !ok {
		return nil, errors.NewNotFoundError("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockStorage) Remove(relativePath string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.files, relativePath)
	return nil
}

func (m *mockStorage) RemoveTicketFiles(ticketID uint) error {
	m.removedAll = append(m.removedAll, ticketID)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func seedTicket(t *testing.T, repo *mockTicketRepository, id, creatorID uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket("Ticket con allegati", "desc", vo.PriorityMedium, creatorID)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(id))
	if repo.tickets == nil {
		repo.tickets = map[uint]*ticket.Ticket{}
	}
	repo.tickets[id] = tk
	return tk
}

func newUploadUseCase(ticketRepo *mockTicketRepository, attachmentRepo *mockAttachmentRepository, storage *mockStorage, auditRepo *mockAuditRepository) *UploadAttachmentUseCase {
	log := logger.NewLogger()
	return NewUploadAttachmentUseCase(ticketRepo, attachmentRepo, storage, appaudit.NewRecorder(auditRepo, log), log)
}

func TestUploadAttachment_Success(t *testing.T) {
	ticketRepo := &mockTicketRepository{}
	attachmentRepo := newMockAttachmentRepository()
	storage := newMockStorage()
	auditRepo := &mockAuditRepository{}
	seedTicket(t, ticketRepo, 7, 4)
	uc := newUploadUseCase(ticketRepo, attachmentRepo, storage, auditRepo)

	result, err := uc.Execute(context.Background(), UploadAttachmentCommand{
		TicketID: 7,
		FileName: "fattura.pdf",
		Size:     11,
		MimeType: "application/pdf",
		Content:  strings.NewReader("%PDF-1.4..."),
		Role:     authorization.RoleUser,
		Actor:    appaudit.Meta{ActorID: uintPtr(4)},
	})

	require.NoError(t, err)
	assert.Equal(t, "fattura.pdf", result.FileName)
	assert.Contains(t, storage.files, "ticket_7/fattura.pdf")

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, audit.ActionAttachmentUpload, entry.Action)
	assert.Equal(t, "File: fattura.pdf", entry.Details)
	require.NotNil(t, entry.TicketID)
	assert.Equal(t, uint(7), *entry.TicketID)
}

func TestUploadAttachment_RejectedExtension_NothingWritten(t *testing.T) {
	ticketRepo := &mockTicketRepository{}
	storage := newMockStorage()
	auditRepo := &mockAuditRepository{}
	seedTicket(t, ticketRepo, 7, 4)
	uc := newUploadUseCase(ticketRepo, newMockAttachmentRepository(), storage, auditRepo)

	_, err := uc.Execute(context.Background(), UploadAttachmentCommand{
		TicketID: 7,
		FileName: "script.exe",
		Size:     10,
		Content:  strings.NewReader("MZ"),
		Role:     authorization.RoleUser,
		Actor:    appaudit.Meta{ActorID: uintPtr(4)},
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, storage.files)
	assert.Empty(t, auditRepo.entries)
}

func TestUploadAttachment_TooLarge_NothingWritten(t *testing.T) {
	ticketRepo := &mockTicketRepository{}
	storage := newMockStorage()
	seedTicket(t, ticketRepo, 7, 4)
	uc := newUploadUseCase(ticketRepo, newMockAttachmentRepository(), storage, &mockAuditRepository{})

	_, err := uc.Execute(context.Background(), UploadAttachmentCommand{
		TicketID: 7,
		FileName: "grande.png",
		Size:     MaxFileSize + 1,
		Content:  strings.NewReader("png"),
		Role:     authorization.RoleUser,
		Actor:    appaudit.Meta{ActorID: uintPtr(4)},
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, storage.files)
}

func TestUploadAttachment_PathTraversalName_Flattened(t *testing.T) {
	ticketRepo := &mockTicketRepository{}
	storage := newMockStorage()
	seedTicket(t, ticketRepo, 7, 4)
	uc := newUploadUseCase(ticketRepo, newMockAttachmentRepository(), storage, &mockAuditRepository{})

	result, err := uc.Execute(context.Background(), UploadAttachmentCommand{
		TicketID: 7,
		FileName: "../../etc/passwd.png",
		Size:     4,
		Content:  strings.NewReader("data"),
		Role:     authorization.RoleOperator,
		Actor:    appaudit.Meta{ActorID: uintPtr(1)},
	})

	require.NoError(t, err)
	assert.Equal(t, "passwd.png", result.FileName)
	assert.Contains(t, storage.files, "ticket_7/passwd.png")
}

func TestUploadAttachment_ForeignTicket_Forbidden(t *testing.T) {
	ticketRepo := &mockTicketRepository{}
	seedTicket(t, ticketRepo, 7, 5)
	uc := newUploadUseCase(ticketRepo, newMockAttachmentRepository(), newMockStorage(), &mockAuditRepository{})

	_, err := uc.Execute(context.Background(), UploadAttachmentCommand{
		TicketID: 7,
		FileName: "foto.jpg",
		Size:     3,
		Content:  strings.NewReader("jpg"),
		Role:     authorization.RoleUser,
		Actor:    appaudit.Meta{ActorID: uintPtr(4)},
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}

func TestDownloadAttachment_LogsExplicitDownloadOnly(t *testing.T) {
	ticketRepo := &mockTicketRepository{}
	attachmentRepo := newMockAttachmentRepository()
	storage := newMockStorage()
	auditRepo := &mockAuditRepository{}
	seedTicket(t, ticketRepo, 7, 4)
	storage.files["ticket_7/foto.jpg"] = []byte("jpegdata")
	a, err := ticket.NewAttachment(7, 4, "foto.jpg", "ticket_7/foto.jpg", 8, "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, attachmentRepo.Save(context.Background(), a))

	log := logger.NewLogger()
	uc := NewDownloadAttachmentUseCase(ticketRepo, attachmentRepo, storage, appaudit.NewRecorder(auditRepo, log), log)

	preview, err := uc.Execute(context.Background(), DownloadAttachmentCommand{
		AttachmentID: a.ID(),
		Role:         authorization.RoleUser,
		Actor:        appaudit.Meta{ActorID: uintPtr(4)},
		Inline:       true,
	})
	require.NoError(t, err)
	preview.Content.Close()
	assert.Empty(t, auditRepo.entries)

	download, err := uc.Execute(context.Background(), DownloadAttachmentCommand{
		AttachmentID: a.ID(),
		Role:         authorization.RoleUser,
		Actor:        appaudit.Meta{ActorID: uintPtr(4)},
	})
	require.NoError(t, err)
	data, err := io.ReadAll(download.Content)
	require.NoError(t, err)
	download.Content.Close()
	assert.Equal(t, "jpegdata", string(data))

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, audit.ActionAttachmentDownload, auditRepo.entries[0].Action)
	assert.Equal(t, "foto.jpg", auditRepo.entries[0].Details)
}

func TestDeleteAttachment_FileRemovalFailure_KeepsRecord(t *testing.T) {
	attachmentRepo := newMockAttachmentRepository()
	storage := newMockStorage()
	auditRepo := &mockAuditRepository{}
	a, err := ticket.NewAttachment(7, 4, "foto.jpg", "ticket_7/foto.jpg", 8, "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, attachmentRepo.Save(context.Background(), a))
	storage.removeErr = errors.NewInternalError("disk error")

	log := logger.NewLogger()
	uc := NewDeleteAttachmentUseCase(attachmentRepo, storage, appaudit.NewRecorder(auditRepo, log), log)

	err = uc.Execute(context.Background(), DeleteAttachmentCommand{
		AttachmentID: a.ID(),
		Actor:        appaudit.Meta{ActorID: uintPtr(1)},
	})

	require.Error(t, err)
	assert.Contains(t, attachmentRepo.attachments, a.ID())
	assert.Empty(t, auditRepo.entries)
}

func TestDeleteAttachment_Success(t *testing.T) {
	attachmentRepo := newMockAttachmentRepository()
	storage := newMockStorage()
	auditRepo := &mockAuditRepository{}
	storage.files["ticket_7/foto.jpg"] = []byte("jpegdata")
	a, err := ticket.NewAttachment(7, 4, "foto.jpg", "ticket_7/foto.jpg", 8, "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, attachmentRepo.Save(context.Background(), a))

	log := logger.NewLogger()
	uc := NewDeleteAttachmentUseCase(attachmentRepo, storage, appaudit.NewRecorder(auditRepo, log), log)

	err = uc.Execute(context.Background(), DeleteAttachmentCommand{
		AttachmentID: a.ID(),
		Actor:        appaudit.Meta{ActorID: uintPtr(1)},
	})

	require.NoError(t, err)
	assert.Empty(t, storage.files)
	assert.NotContains(t, attachmentRepo.attachments, a.ID())

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, audit.ActionAttachmentDelete, auditRepo.entries[0].Action)
	assert.Equal(t, "File: foto.jpg", auditRepo.entries[0].Details)
}
