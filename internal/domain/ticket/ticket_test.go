package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "ticketsys/internal/domain/ticket/valueobjects"
)

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket("Printer broken", "It will not print", vo.PriorityHigh, 1)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Nil(t, tk.AssigneeID())
	assert.Equal(t, uint(1), tk.CreatorID())
	assert.False(t, tk.CreatedAt().IsZero())
}

func TestNewTicket_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		priority    vo.Priority
		creatorID   uint
	}{
		{"empty title", "", "desc", vo.PriorityLow, 1},
		{"empty description", "title", "", vo.PriorityLow, 1},
		{"invalid priority", "title", "desc", vo.Priority("urgent"), 1},
		{"missing creator", "title", "desc", vo.PriorityLow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.title, tt.description, tt.priority, tt.creatorID)
			assert.Error(t, err)
		})
	}
}

func TestTicket_Assign(t *testing.T) {
	tk, err := NewTicket("Printer broken", "It will not print", vo.PriorityHigh, 1)
	require.NoError(t, err)

	require.NoError(t, tk.Assign(7))
	assert.Equal(t, vo.StatusInProgress, tk.Status())
	require.NotNil(t, tk.AssigneeID())
	assert.Equal(t, uint(7), *tk.AssigneeID())

	// Claiming a non-open ticket is rejected.
	assert.Error(t, tk.Assign(9))
}

func TestTicket_Reassign(t *testing.T) {
	tk, err := NewTicket("Printer broken", "It will not print", vo.PriorityHigh, 1)
	require.NoError(t, err)
	require.NoError(t, tk.Assign(7))

	require.NoError(t, tk.Reassign(9))
	assert.Equal(t, uint(9), *tk.AssigneeID())
	assert.Equal(t, vo.StatusInProgress, tk.Status())
}

func TestTicket_CloseIsIdempotent(t *testing.T) {
	tk, err := NewTicket("Printer broken", "It will not print", vo.PriorityHigh, 1)
	require.NoError(t, err)

	assert.True(t, tk.Close())
	assert.Equal(t, vo.StatusClosed, tk.Status())
	assert.False(t, tk.Close())
	assert.Equal(t, vo.StatusClosed, tk.Status())
}

func TestTicket_SetStatusIsFreeForm(t *testing.T) {
	tk, err := NewTicket("Printer broken", "It will not print", vo.PriorityHigh, 1)
	require.NoError(t, err)

	// Any valid status may be written directly; there is no transition table.
	require.NoError(t, tk.SetStatus(vo.StatusClosed))
	require.NoError(t, tk.SetStatus(vo.StatusOpen))
	assert.Error(t, tk.SetStatus(vo.TicketStatus("resolved")))
}

func TestNewMessage(t *testing.T) {
	m, err := NewMessage(1, 2, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Text())

	_, err = NewMessage(1, 2, "   ")
	assert.Error(t, err)
	_, err = NewMessage(0, 2, "hello")
	assert.Error(t, err)
}

func TestNewAttachment_RejectsUnsafePaths(t *testing.T) {
	_, err := NewAttachment(1, 2, "a.pdf", "/etc/passwd", 10, "application/pdf")
	assert.Error(t, err)

	_, err = NewAttachment(1, 2, "a.pdf", "ticket_1/../../a.pdf", 10, "application/pdf")
	assert.Error(t, err)

	a, err := NewAttachment(1, 2, "a.pdf", "ticket_1/a.pdf", 10, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "ticket_1/a.pdf", a.FilePath())
}
