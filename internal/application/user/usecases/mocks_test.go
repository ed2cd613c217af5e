package usecases

import (
	"context"
	"time"

	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
)

type mockUserRepository struct {
	users  map[uint]*user.User
	nextID uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[uint]*user.User{}, nextID: 1}
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) error {
	if u.ID() == 0 {
		if err := u.SetID(m.nextID); err != nil {
			return err
		}
		m.nextID++
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if _, ok := m.users[u.ID()]; !ok {
		return errors.NewNotFoundError("user not found")
	}
	m.users[u.ID()] = u
	return nil
}

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
	return nil, nil
}

func (m *mockUserRepository) FindByRole(ctx context.Context, role authorization.Role) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

type mockTicketRepository struct {
	tickets    map[uint]*ticket.Ticket
	unassigned []uint
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{tickets: map[uint]*ticket.Ticket{}}
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	m.tickets[t.ID()] = t
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
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
	delete(m.tickets, id)
	return nil
}

func (m *mockTicketRepository) UnassignByAssignee(ctx context.Context, assigneeID uint) error {
	m.unassigned = append(m.unassigned, assigneeID)
	for _, t := range m.tickets {
		if t.AssigneeID() != nil && *t.AssigneeID() == assigneeID {
			t.SetAssignee(nil)
		}
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
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

type mockMessageRepository struct{ deletedTickets []uint }

func (m *mockMessageRepository) Save(ctx context.Context, msg *ticket.Message) error { return nil }
func (m *mockMessageRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	return nil, nil
}
func (m *mockMessageRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	m.deletedTickets = append(m.deletedTickets, ticketID)
	return nil
}

type mockAttachmentRepository struct{ deletedTickets []uint }

func (m *mockAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error { return nil }
func (m *mockAttachmentRepository) FindByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	return nil, errors.NewNotFoundError("attachment not found")
}
func (m *mockAttachmentRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	return nil, nil
}
func (m *mockAttachmentRepository) Delete(ctx context.Context, id uint) error { return nil }
func (m *mockAttachmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	m.deletedTickets = append(m.deletedTickets, ticketID)
	return nil
}

type mockAuditRepository struct {
	entries       []*audit.Entry
	detachedTix   []uint
	detachedUsers []uint
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

func (m *mockAuditRepository) DetachTicket(ctx context.Context, ticketID uint) error {
	m.detachedTix = append(m.detachedTix, ticketID)
	return nil
}

func (m *mockAuditRepository) DetachUser(ctx context.Context, userID uint) error {
	m.detachedUsers = append(m.detachedUsers, userID)
	return nil
}

type mockHasher struct{}

func (m *mockHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (m *mockHasher) Verify(password, hash string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return errors.NewUnauthorizedError("password verification failed")
}

type mockTokenGenerator struct{}

func (m *mockTokenGenerator) Generate(userID uint, username, role string) (string, time.Time, error) {
	return "token-for-" + username, time.Now().Add(time.Hour), nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockFileRemover struct{ removed []uint }

func (m *mockFileRemover) RemoveTicketFiles(ticketID uint) error {
	m.removed = append(m.removed, ticketID)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }
