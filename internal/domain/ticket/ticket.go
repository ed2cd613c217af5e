package ticket

import (
	"fmt"
	"time"

	vo "ticketsys/internal/domain/ticket/valueobjects"
)

// Ticket is the aggregate root for a unit of support work. Status writes are
// deliberately free-form: any handler may set any valid status, while Assign
// and Close implement the two blessed workflow operations.
type Ticket struct {
	id          uint
	title       string
	description string
	priority    vo.Priority
	status      vo.TicketStatus
	creatorID   uint
	assigneeID  *uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTicket(title, description string, priority vo.Priority, creatorID uint) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := time.Now()
	return &Ticket{
		title:       title,
		description: description,
		priority:    priority,
		status:      vo.StatusOpen,
		creatorID:   creatorID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	creatorID uint,
	assigneeID *uint,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &Ticket{
		id:          id,
		title:       title,
		description: description,
		priority:    priority,
		status:      status,
		creatorID:   creatorID,
		assigneeID:  assigneeID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetTitle(title string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	t.title = title
	t.touch()
	return nil
}

func (t *Ticket) SetDescription(description string) error {
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	t.description = description
	t.touch()
	return nil
}

func (t *Ticket) SetPriority(priority vo.Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	t.priority = priority
	t.touch()
	return nil
}

// SetStatus writes the status without workflow restrictions. There is no
// enforced transition table; Assign and Close are the blessed operations.
func (t *Ticket) SetStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	t.status = status
	t.touch()
	return nil
}

func (t *Ticket) SetAssignee(assigneeID *uint) {
	t.assigneeID = assigneeID
	t.touch()
}

// Assign claims an open ticket: the assignee is set and the status moves to
// in_progress. Claiming a ticket that is not open is rejected.
func (t *Ticket) Assign(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if !t.status.IsOpen() {
		return fmt.Errorf("ticket is not open")
	}

	t.assigneeID = &assigneeID
	t.status = vo.StatusInProgress
	t.touch()
	return nil
}

// Reassign moves the ticket to another assignee regardless of current
// status, forcing it back to in_progress.
func (t *Ticket) Reassign(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	t.assigneeID = &assigneeID
	t.status = vo.StatusInProgress
	t.touch()
	return nil
}

// Close marks the ticket closed. Closing an already-closed ticket is a no-op.
func (t *Ticket) Close() bool {
	if t.status.IsClosed() {
		return false
	}
	t.status = vo.StatusClosed
	t.touch()
	return true
}

func (t *Ticket) touch() {
	t.updatedAt = time.Now()
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	return nil
}
