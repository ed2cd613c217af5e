// Package usecases implements the ticket lifecycle operations. Every
// mutation follows the same shape: load, snapshot, mutate, persist, diff,
// log, and only then notify.
package usecases

import (
	"context"
	"fmt"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/application/notification"
	"ticketsys/internal/domain/user"
)

// NotificationDispatcher sends the lifecycle emails. Satisfied by
// notification.Dispatcher.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, meta appaudit.Meta, event notification.Event) error
}

// TransactionManager runs a function inside one database transaction.
// Satisfied by db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileRemover deletes the stored files belonging to a ticket. Satisfied by
// the local storage backend.
type FileRemover interface {
	RemoveTicketFiles(ticketID uint) error
}

// resolveAssigneeName returns the display name snapshots render for an
// assignee. A stale reference falls back to a numeric label instead of
// failing the whole operation.
func resolveAssigneeName(ctx context.Context, users user.Repository, assigneeID *uint) string {
	if assigneeID == nil {
		return ""
	}
	u, err := users.FindByID(ctx, *assigneeID)
	if err != nil {
		return fmt.Sprintf("utente #%d", *assigneeID)
	}
	return u.DisplayName()
}
