package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketsys/internal/domain/audit"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

type mockAuditRepository struct {
	listFunc      func(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error)
	countByAction func(ctx context.Context, from, to *time.Time) ([]audit.ActionCount, error)
	countByActor  func(ctx context.Context, actions []audit.Action, from, to *time.Time) ([]audit.ActorCount, error)
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error { return nil }

func (m *mockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockAuditRepository) CountByAction(ctx context.Context, from, to *time.Time) ([]audit.ActionCount, error) {
	if m.countByAction != nil {
		return m.countByAction(ctx, from, to)
	}
	return nil, nil
}

func (m *mockAuditRepository) CountByActor(ctx context.Context, actions []audit.Action, from, to *time.Time) ([]audit.ActorCount, error) {
	if m.countByActor != nil {
		return m.countByActor(ctx, actions, from, to)
	}
	return nil, nil
}

func (m *mockAuditRepository) DetachTicket(ctx context.Context, ticketID uint) error { return nil }
func (m *mockAuditRepository) DetachUser(ctx context.Context, userID uint) error     { return nil }

func TestListAuditEntries_DefaultsPagination(t *testing.T) {
	var captured audit.Filter
	repo := &mockAuditRepository{
		listFunc: func(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
			captured = filter
			return []*audit.Entry{{Action: audit.ActionLogin}}, 1, nil
		},
	}
	uc := NewListAuditEntriesUseCase(repo, logger.NewLogger())

	result, err := uc.Execute(context.Background(), ListAuditEntriesCommand{Page: 0, PageSize: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, defaultPageSize, captured.PageSize)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, defaultPageSize, result.PageSize)
}

func TestListAuditEntries_CapsPageSize(t *testing.T) {
	var captured audit.Filter
	repo := &mockAuditRepository{
		listFunc: func(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListAuditEntriesUseCase(repo, logger.NewLogger())

	_, err := uc.Execute(context.Background(), ListAuditEntriesCommand{Page: 2, PageSize: 10000})
	require.NoError(t, err)

	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, maxPageSize, captured.PageSize)
}

func TestListAuditEntries_PassesFilters(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	var captured audit.Filter
	repo := &mockAuditRepository{
		listFunc: func(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListAuditEntriesUseCase(repo, logger.NewLogger())

	_, err := uc.Execute(context.Background(), ListAuditEntriesCommand{
		Actor:  "mario",
		Target: "luigi",
		Action: "TICKET",
		From:   &from,
		To:     &to,
	})
	require.NoError(t, err)

	assert.Equal(t, "mario", captured.Actor)
	assert.Equal(t, "luigi", captured.Target)
	assert.Equal(t, "TICKET", captured.Action)
	assert.Equal(t, &from, captured.From)
	assert.Equal(t, &to, captured.To)
}

func TestListAuditEntries_RepositoryError(t *testing.T) {
	repo := &mockAuditRepository{
		listFunc: func(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
			return nil, 0, errors.NewInternalError("db down")
		},
	}
	uc := NewListAuditEntriesUseCase(repo, logger.NewLogger())

	result, err := uc.Execute(context.Background(), ListAuditEntriesCommand{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestActivityReport_CountsHandlingActions(t *testing.T) {
	var capturedActions []audit.Action
	repo := &mockAuditRepository{
		countByAction: func(ctx context.Context, from, to *time.Time) ([]audit.ActionCount, error) {
			return []audit.ActionCount{
				{Action: audit.ActionTicketCreate, Total: 5},
				{Action: audit.ActionLogin, Total: 3},
			}, nil
		},
		countByActor: func(ctx context.Context, actions []audit.Action, from, to *time.Time) ([]audit.ActorCount, error) {
			capturedActions = actions
			return []audit.ActorCount{{ActorID: 2, Username: "operatore", Total: 4}}, nil
		},
	}
	uc := NewActivityReportUseCase(repo, logger.NewLogger())

	result, err := uc.Execute(context.Background(), ActivityReportCommand{})
	require.NoError(t, err)

	assert.Len(t, result.ByAction, 2)
	assert.Len(t, result.ByOperator, 1)
	assert.Equal(t, "operatore", result.ByOperator[0].Username)
	assert.Contains(t, capturedActions, audit.ActionTicketStatusChange)
	assert.Contains(t, capturedActions, audit.ActionTicketAssignedChange)
	assert.NotContains(t, capturedActions, audit.ActionLogin)
}

func TestActivityReport_PropagatesRange(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	var gotFrom, gotTo *time.Time
	repo := &mockAuditRepository{
		countByAction: func(ctx context.Context, f, t *time.Time) ([]audit.ActionCount, error) {
			gotFrom, gotTo = f, t
			return nil, nil
		},
	}
	uc := NewActivityReportUseCase(repo, logger.NewLogger())

	_, err := uc.Execute(context.Background(), ActivityReportCommand{From: &from, To: &to})
	require.NoError(t, err)

	assert.Equal(t, &from, gotFrom)
	assert.Equal(t, &to, gotTo)
}
