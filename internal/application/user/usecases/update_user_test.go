package usecases

import (
	"context"
	"testing"

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

func newUpdateUserUseCase(userRepo *mockUserRepository, auditRepo *mockAuditRepository) *UpdateUserUseCase {
	log := logger.NewLogger()
	return NewUpdateUserUseCase(userRepo, &mockHasher{}, appaudit.NewRecorder(auditRepo, log), log)
}

func TestUpdateUser_OneEntryPerChangedField(t *testing.T) {
	userRepo := newMockUserRepository()
	auditRepo := &mockAuditRepository{}
	u := seedUser(t, userRepo, "mario.rossi", "mario@example.com", "x", authorization.RoleUser)
	uc := newUpdateUserUseCase(userRepo, auditRepo)

	result, err := uc.Execute(context.Background(), UpdateUserCommand{
		UserID:   u.ID(),
		Username: strPtr("mario.verdi"),
		Role:     strPtr("operator"),
		Actor:    appaudit.Meta{ActorID: uintPtr(1)},
	})

	require.NoError(t, err)
	assert.Equal(t, "mario.verdi", result.Username)
	assert.Equal(t, "operator", result.Role)

	// Fixed order: username before role.
	require.Len(t, auditRepo.entries, 2)
	assert.Equal(t, audit.ActionUserUsernameChange, auditRepo.entries[0].Action)
	assert.Equal(t, "Campo: username\nPRIMA: mario.rossi\nDOPO: mario.verdi", auditRepo.entries[0].Details)
	assert.Equal(t, audit.ActionUserRoleChange, auditRepo.entries[1].Action)
	assert.Equal(t, "Campo: role\nPRIMA: user\nDOPO: operator", auditRepo.entries[1].Details)

	for _, entry := range auditRepo.entries {
		require.NotNil(t, entry.TargetUserID)
		assert.Equal(t, u.ID(), *entry.TargetUserID)
		require.NotNil(t, entry.ActorID)
		assert.Equal(t, uint(1), *entry.ActorID)
	}
}

func TestUpdateUser_PasswordChange_NotAudited(t *testing.T) {
	userRepo := newMockUserRepository()
	auditRepo := &mockAuditRepository{}
	u := seedUser(t, userRepo, "mario.rossi", "mario@example.com", "x", authorization.RoleUser)
	uc := newUpdateUserUseCase(userRepo, auditRepo)

	_, err := uc.Execute(context.Background(), UpdateUserCommand{
		UserID:   u.ID(),
		Password: strPtr("nuovapassword"),
		Actor:    appaudit.Meta{ActorID: uintPtr(1)},
	})

	require.NoError(t, err)
	assert.Empty(t, auditRepo.entries)
	assert.Equal(t, "hashed:nuovapassword", userRepo.users[u.ID()].PasswordHash())
}

func TestUpdateUser_InvalidRole(t *testing.T) {
	userRepo := newMockUserRepository()
	u := seedUser(t, userRepo, "mario.rossi", "mario@example.com", "x", authorization.RoleUser)
	uc := newUpdateUserUseCase(userRepo, &mockAuditRepository{})

	_, err := uc.Execute(context.Background(), UpdateUserCommand{
		UserID: u.ID(),
		Role:   strPtr("superuser"),
		Actor:  appaudit.Meta{ActorID: uintPtr(1)},
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateUser_TakenUsername(t *testing.T) {
	userRepo := newMockUserRepository()
	seedUser(t, userRepo, "anna.bianchi", "anna@example.com", "x", authorization.RoleUser)
	u := seedUser(t, userRepo, "mario.rossi", "mario@example.com", "x", authorization.RoleUser)
	uc := newUpdateUserUseCase(userRepo, &mockAuditRepository{})

	_, err := uc.Execute(context.Background(), UpdateUserCommand{
		UserID:   u.ID(),
		Username: strPtr("anna.bianchi"),
		Actor:    appaudit.Meta{ActorID: uintPtr(1)},
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestDeleteUser_CascadesOwnedTicketsAndDetaches(t *testing.T) {
	userRepo := newMockUserRepository()
	ticketRepo := newMockTicketRepository()
	messageRepo := &mockMessageRepository{}
	attachmentRepo := &mockAttachmentRepository{}
	auditRepo := &mockAuditRepository{}
	files := &mockFileRemover{}

	admin := seedUser(t, userRepo, "capo", "capo@example.com", "x", authorization.RoleAdmin)
	victim := seedUser(t, userRepo, "da.eliminare", "victim@example.com", "x", authorization.RoleOperator)
	require.NotEqual(t, admin.ID(), victim.ID())

	owned, err := ticket.NewTicket("Mio ticket", "desc", vo.PriorityLow, victim.ID())
	require.NoError(t, err)
	require.NoError(t, owned.SetID(10))
	require.NoError(t, ticketRepo.Save(context.Background(), owned))

	other, err := ticket.NewTicket("Altrui", "desc", vo.PriorityLow, 99)
	require.NoError(t, err)
	require.NoError(t, other.SetID(11))
	require.NoError(t, other.Assign(victim.ID()))
	require.NoError(t, ticketRepo.Save(context.Background(), other))

	log := logger.NewLogger()
	uc := NewDeleteUserUseCase(
		userRepo, ticketRepo, messageRepo, attachmentRepo, auditRepo,
		appaudit.NewRecorder(auditRepo, log), &mockTxManager{}, files, log,
	)

	err = uc.Execute(context.Background(), DeleteUserCommand{
		UserID: victim.ID(),
		Actor:  appaudit.Meta{ActorID: uintPtr(admin.ID())},
	})

	require.NoError(t, err)
	assert.NotContains(t, userRepo.users, victim.ID())
	assert.NotContains(t, ticketRepo.tickets, uint(10))
	assert.Contains(t, ticketRepo.tickets, uint(11))
	assert.Nil(t, ticketRepo.tickets[11].AssigneeID())
	assert.Equal(t, []uint{10}, auditRepo.detachedTix)
	assert.Equal(t, []uint{victim.ID()}, auditRepo.detachedUsers)
	assert.Equal(t, []uint{10}, files.removed)

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, audit.ActionUserDelete, entry.Action)
	assert.Equal(t, "Utente eliminato: da.eliminare", entry.Details)
}

func TestDeleteUser_SelfDeleteRefused(t *testing.T) {
	userRepo := newMockUserRepository()
	auditRepo := &mockAuditRepository{}
	u := seedUser(t, userRepo, "admin", "admin@example.com", "x", authorization.RoleAdmin)

	log := logger.NewLogger()
	uc := NewDeleteUserUseCase(
		userRepo, newMockTicketRepository(), &mockMessageRepository{}, &mockAttachmentRepository{}, auditRepo,
		appaudit.NewRecorder(auditRepo, log), &mockTxManager{}, &mockFileRemover{}, log,
	)

	err := uc.Execute(context.Background(), DeleteUserCommand{
		UserID: u.ID(),
		Actor:  appaudit.Meta{ActorID: uintPtr(u.ID())},
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, userRepo.users, u.ID())
	assert.Empty(t, auditRepo.entries)
}
