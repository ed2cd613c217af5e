package repository

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ticketsys/internal/domain/ticket"
	vo "ticketsys/internal/domain/ticket/valueobjects"
	"ticketsys/internal/infrastructure/persistence/models"
	apperrors "ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.TicketModel{},
		&models.MessageModel{},
		&models.AttachmentModel{},
		&models.AuditLogModel{},
	)
	require.NoError(t, err)

	return db
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

func createTestTicket(t *testing.T, title string, priority vo.Priority, creatorID uint) *ticket.Ticket {
	tk, err := ticket.NewTicket(title, "descrizione di prova", priority, creatorID)
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db, testLogger())
	ctx := context.Background()

	t.Run("save assigns an ID", func(t *testing.T) {
		tk := createTestTicket(t, "Stampante guasta", vo.PriorityHigh, 1)

		err := repo.Save(ctx, tk)
		assert.NoError(t, err)
		assert.NotZero(t, tk.ID())
	})

	t.Run("find round trips the fields", func(t *testing.T) {
		tk := createTestTicket(t, "VPN non raggiungibile", vo.PriorityMedium, 2)
		require.NoError(t, repo.Save(ctx, tk))

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Equal(t, tk.Title(), found.Title())
		assert.Equal(t, tk.Priority(), found.Priority())
		assert.Equal(t, vo.StatusOpen, found.Status())
		assert.Equal(t, uint(2), found.CreatorID())
		assert.Nil(t, found.AssigneeID())
	})

	t.Run("find non-existent ticket", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 99999)
		assert.Error(t, err)
		assert.Nil(t, found)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestTicketRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db, testLogger())
	ctx := context.Background()

	t.Run("assignment is persisted", func(t *testing.T) {
		tk := createTestTicket(t, "Monitor rotto", vo.PriorityLow, 1)
		require.NoError(t, repo.Save(ctx, tk))

		require.NoError(t, tk.Assign(5))
		err := repo.Update(ctx, tk)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		require.NotNil(t, found.AssigneeID())
		assert.Equal(t, uint(5), *found.AssigneeID())
		assert.Equal(t, vo.StatusInProgress, found.Status())
	})

	t.Run("clearing the assignee writes NULL", func(t *testing.T) {
		tk := createTestTicket(t, "Tastiera difettosa", vo.PriorityLow, 1)
		require.NoError(t, repo.Save(ctx, tk))
		require.NoError(t, tk.Assign(5))
		require.NoError(t, repo.Update(ctx, tk))

		require.NoError(t, repo.UnassignByAssignee(ctx, 5))

		found, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Nil(t, found.AssigneeID())
	})

	t.Run("update non-existent ticket", func(t *testing.T) {
		tk := createTestTicket(t, "Fantasma", vo.PriorityLow, 1)
		require.NoError(t, tk.SetID(99999))

		err := repo.Update(ctx, tk)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestTicketRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db, testLogger())
	ctx := context.Background()

	tk1 := createTestTicket(t, "Stampante guasta", vo.PriorityHigh, 1)
	require.NoError(t, repo.Save(ctx, tk1))
	tk2 := createTestTicket(t, "Accesso VPN", vo.PriorityMedium, 2)
	require.NoError(t, repo.Save(ctx, tk2))
	tk3 := createTestTicket(t, "Stampante di rete lenta", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, tk3))

	require.NoError(t, tk2.Assign(7))
	require.NoError(t, repo.Update(ctx, tk2))
	tk3.Close()
	require.NoError(t, repo.Update(ctx, tk3))

	t.Run("no filter returns everything", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)
	})

	t.Run("filter by status", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{
			Statuses: []vo.TicketStatus{vo.StatusOpen},
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, tk1.ID(), tickets[0].ID())
	})

	t.Run("filter by creator", func(t *testing.T) {
		creatorID := uint(1)
		_, total, err := repo.List(ctx, ticket.TicketFilter{CreatorID: &creatorID})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("filter unassigned", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Unassigned: true})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, tk := range tickets {
			assert.Nil(t, tk.AssigneeID())
		}
	})

	t.Run("filter by title substring", func(t *testing.T) {
		_, total, err := repo.List(ctx, ticket.TicketFilter{Title: "Stampante"})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("pagination", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Page: 2, PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 1)
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{SortBy: "password_hash; DROP TABLE tickets", SortOrder: "asc"})
		assert.NoError(t, err)
		assert.Len(t, tickets, 3)
	})

	t.Run("count by status", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), counts.Open)
		assert.Equal(t, int64(1), counts.InProgress)
		assert.Equal(t, int64(1), counts.Closed)
	})
}

func TestTicketRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db, testLogger())
	ctx := context.Background()

	t.Run("delete existing ticket", func(t *testing.T) {
		tk := createTestTicket(t, "Da eliminare", vo.PriorityLow, 1)
		require.NoError(t, repo.Save(ctx, tk))

		err := repo.Delete(ctx, tk.ID())
		assert.NoError(t, err)

		exists, err := repo.Exists(ctx, tk.ID())
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("delete non-existent ticket", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestMessageRepository(t *testing.T) {
	db := setupTestDB(t)
	ticketRepo := NewTicketRepository(db, testLogger())
	repo := NewMessageRepository(db, testLogger())
	ctx := context.Background()

	tk := createTestTicket(t, "Con messaggi", vo.PriorityMedium, 1)
	require.NoError(t, ticketRepo.Save(ctx, tk))

	m1, err := ticket.NewMessage(tk.ID(), 1, "Primo messaggio")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m1))
	assert.NotZero(t, m1.ID())

	m2, err := ticket.NewMessage(tk.ID(), 2, "Secondo messaggio")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m2))

	messages, err := repo.FindByTicketID(ctx, tk.ID())
	assert.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Primo messaggio", messages[0].Text())

	require.NoError(t, repo.DeleteByTicketID(ctx, tk.ID()))
	messages, err = repo.FindByTicketID(ctx, tk.ID())
	assert.NoError(t, err)
	assert.Len(t, messages, 0)
}

func TestAttachmentRepository(t *testing.T) {
	db := setupTestDB(t)
	ticketRepo := NewTicketRepository(db, testLogger())
	repo := NewAttachmentRepository(db, testLogger())
	ctx := context.Background()

	tk := createTestTicket(t, "Con allegati", vo.PriorityMedium, 1)
	require.NoError(t, ticketRepo.Save(ctx, tk))

	a, err := ticket.NewAttachment(tk.ID(), 1, "fattura.pdf", "ticket_1/fattura.pdf", 2048, "application/pdf")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))
	assert.NotZero(t, a.ID())

	t.Run("find by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, a.ID())
		assert.NoError(t, err)
		assert.Equal(t, "fattura.pdf", found.FileName())
		assert.Equal(t, int64(2048), found.FileSize())
	})

	t.Run("find by ticket", func(t *testing.T) {
		attachments, err := repo.FindByTicketID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Len(t, attachments, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, a.ID()))

		found, err := repo.FindByID(ctx, a.ID())
		assert.True(t, apperrors.IsNotFoundError(err))
		assert.Nil(t, found)
	})

	t.Run("delete by ticket", func(t *testing.T) {
		b, err := ticket.NewAttachment(tk.ID(), 1, "foto.jpg", "ticket_1/foto.jpg", 512, "image/jpeg")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, b))

		require.NoError(t, repo.DeleteByTicketID(ctx, tk.ID()))
		attachments, err := repo.FindByTicketID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Len(t, attachments, 0)
	})
}
