package usecases

import (
	"context"
	"time"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/application/notification"
	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
)

type mockTicketRepository struct {
	tickets    map[uint]*ticket.Ticket
	nextID     uint
	saveFunc   func(ctx context.Context, t *ticket.Ticket) error
	updateFunc func(ctx context.Context, t *ticket.Ticket) error
	deleteFunc func(ctx context.Context, id uint) error
	listFunc   func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{tickets: map[uint]*ticket.Ticket{}, nextID: 1}
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, t)
	}
	if t.ID() == 0 {
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
		m.nextID++
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, t)
	}
	if _, ok := m.tickets[t.ID()]; !ok {
		return errors.NewNotFoundError("ticket not found")
	}
	m.tickets[t.ID()] = t
	return nil
}

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

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	delete(m.tickets, id)
	return nil
}

func (m *mockTicketRepository) UnassignByAssignee(ctx context.Context, assigneeID uint) error {
	for _, t := range m.tickets {
		if t.AssigneeID() != nil && *t.AssigneeID() == assigneeID {
			t.SetAssignee(nil)
		}
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	var out []*ticket.Ticket
	for _, t := range m.tickets {
		if filter.CreatorID != nil && t.CreatorID() != *filter.CreatorID {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context) (ticket.StatusCounts, error) {
	return ticket.StatusCounts{}, nil
}

type mockMessageRepository struct {
	messages []*ticket.Message
	nextID   uint
}

func (m *mockMessageRepository) Save(ctx context.Context, msg *ticket.Message) error {
	m.nextID++
	if msg.ID() == 0 {
		if err := msg.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockMessageRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var out []*ticket.Message
	for _, msg := range m.messages {
		if msg.TicketID() == ticketID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	var kept []*ticket.Message
	for _, msg := range m.messages {
		if msg.TicketID() != ticketID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

type mockAttachmentRepository struct {
	attachments map[uint]*ticket.Attachment
	nextID      uint
}

func newMockAttachmentRepository() *mockAttachmentRepository {
	return &mockAttachmentRepository{attachments: map[uint]*ticket.Attachment{}, nextID: 1}
}

func (m *mockAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
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
	var out []*ticket.Attachment
	for _, a := range m.attachments {
		if a.TicketID() == ticketID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, id uint) error {
	delete(m.attachments, id)
	return nil
}

func (m *mockAttachmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	for id, a := range m.attachments {
		if a.TicketID() == ticketID {
			delete(m.attachments, id)
		}
	}
	return nil
}

type mockUserRepository struct {
	users map[uint]*user.User
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) error   { return nil }
func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) FindNotifiableByRoles(ctx context.Context, roles ...authorization.Role) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if u.Email() == "" {
			continue
		}
		for _, role := range roles {
			if u.Role() == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (m *mockUserRepository) FindByRole(ctx context.Context, role authorization.Role) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if u.Role() == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*user.User, error) { return nil, nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

type mockAuditRepository struct {
	entries       []*audit.Entry
	detachedTix   []uint
	detachedUsers []uint
	appendFunc    func(ctx context.Context, entry *audit.Entry) error
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
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

func (m *mockAuditRepository) DetachTicket(ctx context.Context, ticketID uint) error {
	m.detachedTix = append(m.detachedTix, ticketID)
	return nil
}

func (m *mockAuditRepository) DetachUser(ctx context.Context, userID uint) error {
	m.detachedUsers = append(m.detachedUsers, userID)
	return nil
}

func (m *mockAuditRepository) actions() []audit.Action {
	out := make([]audit.Action, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

type mockDispatcher struct {
	events       []notification.Event
	dispatchFunc func(ctx context.Context, meta appaudit.Meta, event notification.Event) error
}

func (m *mockDispatcher) Dispatch(ctx context.Context, meta appaudit.Meta, event notification.Event) error {
	if m.dispatchFunc != nil {
		return m.dispatchFunc(ctx, meta, event)
	}
	m.events = append(m.events, event)
	return nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockFileRemover struct {
	removed []uint
}

func (m *mockFileRemover) RemoveTicketFiles(ticketID uint) error {
	m.removed = append(m.removed, ticketID)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }
