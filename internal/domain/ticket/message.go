package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Message is a conversation entry on a ticket. Messages are immutable once
// created and ordered by creation time ascending.
type Message struct {
	id        uint
	ticketID  uint
	senderID  uint
	text      string
	createdAt time.Time
}

func NewMessage(ticketID, senderID uint, text string) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if senderID == 0 {
		return nil, fmt.Errorf("sender ID is required")
	}
	if len(strings.TrimSpace(text)) == 0 {
		return nil, fmt.Errorf("message text cannot be empty")
	}

	return &Message{
		ticketID:  ticketID,
		senderID:  senderID,
		text:      text,
		createdAt: time.Now(),
	}, nil
}

func ReconstructMessage(id, ticketID, senderID uint, text string, createdAt time.Time) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	return &Message{
		id:        id,
		ticketID:  ticketID,
		senderID:  senderID,
		text:      text,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) SenderID() uint {
	return m.senderID
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}
