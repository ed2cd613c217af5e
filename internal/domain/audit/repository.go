package audit

import (
	"context"
	"time"
)

// Repository persists audit entries. The log is append-only: implementations
// expose no update or single-entry delete. DetachTicket and DetachUser null
// the weak references when the referenced row is removed, so old entries
// keep reading as "deleted ticket" rather than dangling.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
	CountByAction(ctx context.Context, from, to *time.Time) ([]ActionCount, error)
	CountByActor(ctx context.Context, actions []Action, from, to *time.Time) ([]ActorCount, error)
	DetachTicket(ctx context.Context, ticketID uint) error
	DetachUser(ctx context.Context, userID uint) error
}
