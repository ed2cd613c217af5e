package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/application/notification"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

func TestCreateTicket_Success(t *testing.T) {
	ticketRepo := newMockTicketRepository()
	auditRepo := &mockAuditRepository{}
	dispatcher := &mockDispatcher{}
	recorder := appaudit.NewRecorder(auditRepo, logger.NewLogger())
	uc := NewCreateTicketUseCase(ticketRepo, recorder, dispatcher, logger.NewLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Stampante guasta",
		Description: "La stampante del terzo piano non stampa",
		Priority:    "high",
		Actor:       appaudit.Meta{ActorID: uintPtr(4)},
		ActorName:   "utente",
	})

	require.NoError(t, err)
	assert.Equal(t, "Stampante guasta", result.Title)
	assert.Equal(t, "open", result.Status)
	assert.Equal(t, "high", result.Priority)
	assert.Nil(t, result.AssigneeID)

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, audit.ActionTicketCreate, entry.Action)
	assert.Equal(t, "Titolo: Stampante guasta", entry.Details)
	require.NotNil(t, entry.TicketID)
	assert.Equal(t, result.ID, *entry.TicketID)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, notification.EventTicketCreated, dispatcher.events[0].Kind)
}

func TestCreateTicket_LogsBeforeNotifying(t *testing.T) {
	ticketRepo := newMockTicketRepository()
	auditRepo := &mockAuditRepository{}
	recorder := appaudit.NewRecorder(auditRepo, logger.NewLogger())

	var entriesAtDispatch int
	dispatcher := &mockDispatcher{
		dispatchFunc: func(ctx context.Context, meta appaudit.Meta, event notification.Event) error {
			entriesAtDispatch = len(auditRepo.entries)
			return nil
		},
	}
	uc := NewCreateTicketUseCase(ticketRepo, recorder, dispatcher, logger.NewLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Rete lenta",
		Description: "desc",
		Priority:    "low",
		Actor:       appaudit.Meta{ActorID: uintPtr(2)},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, entriesAtDispatch)
}

func TestCreateTicket_NotificationFailureDoesNotFail(t *testing.T) {
	ticketRepo := newMockTicketRepository()
	auditRepo := &mockAuditRepository{}
	recorder := appaudit.NewRecorder(auditRepo, logger.NewLogger())
	dispatcher := &mockDispatcher{
		dispatchFunc: func(ctx context.Context, meta appaudit.Meta, event notification.Event) error {
			return errors.NewInternalError("smtp down")
		},
	}
	uc := NewCreateTicketUseCase(ticketRepo, recorder, dispatcher, logger.NewLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Monitor",
		Description: "desc",
		Priority:    "medium",
		Actor:       appaudit.Meta{ActorID: uintPtr(2)},
	})

	require.NoError(t, err)
	assert.NotZero(t, result.ID)
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, audit.ActionTicketCreate, auditRepo.entries[0].Action)
}

func TestCreateTicket_Validation(t *testing.T) {
	uc := NewCreateTicketUseCase(newMockTicketRepository(), appaudit.NewRecorder(&mockAuditRepository{}, logger.NewLogger()), &mockDispatcher{}, logger.NewLogger())

	tests := []struct {
		name string
		cmd  CreateTicketCommand
	}{
		{"empty title", CreateTicketCommand{Description: "d", Priority: "low", Actor: appaudit.Meta{ActorID: uintPtr(1)}}},
		{"empty description", CreateTicketCommand{Title: "t", Priority: "low", Actor: appaudit.Meta{ActorID: uintPtr(1)}}},
		{"missing priority", CreateTicketCommand{Title: "t", Description: "d", Actor: appaudit.Meta{ActorID: uintPtr(1)}}},
		{"invalid priority", CreateTicketCommand{Title: "t", Description: "d", Priority: "urgent", Actor: appaudit.Meta{ActorID: uintPtr(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}
