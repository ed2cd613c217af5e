package ticket

import (
	"context"
	"time"

	vo "ticketsys/internal/domain/ticket/valueobjects"
)

// TicketFilter narrows List results. Zero values mean "no constraint".
type TicketFilter struct {
	Statuses   []vo.TicketStatus
	Priorities []vo.Priority
	CreatorID  *uint
	AssigneeID *uint
	Unassigned bool
	Title      string // substring match
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// StatusCounts aggregates tickets by status for the admin dashboard.
type StatusCounts struct {
	Open       int64
	InProgress int64
	Closed     int64
}

type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	FindByID(ctx context.Context, id uint) (*Ticket, error)
	// Exists reports whether a ticket with this identity is persisted; the
	// change tracker uses it to distinguish insert from update.
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	// UnassignByAssignee clears the assignee on every ticket held by the
	// given user. Used when the user is deleted.
	UnassignByAssignee(ctx context.Context, assigneeID uint) error
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	CountByStatus(ctx context.Context) (StatusCounts, error)
}

type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Message, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

type AttachmentRepository interface {
	Save(ctx context.Context, a *Attachment) error
	FindByID(ctx context.Context, id uint) (*Attachment, error)
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
	Delete(ctx context.Context, id uint) error
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}
