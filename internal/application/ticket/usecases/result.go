package usecases

import (
	"time"

	"ticketsys/internal/domain/ticket"
)

// TicketResult is the flattened view of a ticket returned by the use cases.
type TicketResult struct {
	ID          uint
	Title       string
	Description string
	Priority    string
	Status      string
	CreatorID   uint
	AssigneeID  *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func newTicketResult(t *ticket.Ticket) *TicketResult {
	return &TicketResult{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// MessageResult is the flattened view of a ticket message.
type MessageResult struct {
	ID        uint
	TicketID  uint
	SenderID  uint
	Text      string
	CreatedAt time.Time
}

func newMessageResult(m *ticket.Message) *MessageResult {
	return &MessageResult{
		ID:        m.ID(),
		TicketID:  m.TicketID(),
		SenderID:  m.SenderID(),
		Text:      m.Text(),
		CreatedAt: m.CreatedAt(),
	}
}
