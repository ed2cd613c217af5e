package ticket

import (
	vo "ticketsys/internal/domain/ticket/valueobjects"
)

// Tracked field names, also used to key audit actions.
const (
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldAssignee    = "assigned_to"
	FieldTitle       = "title"
	FieldDescription = "description"
)

// NoAssignee is the sentinel rendered when a ticket has no assignee.
const NoAssignee = "Nessuno"

// Description bodies are never copied into the audit trail; only these
// placeholders are recorded.
const (
	DescriptionOldPlaceholder = "(testo precedente)"
	DescriptionNewPlaceholder = "(testo aggiornato)"
)

// Snapshot is an explicit value object holding the tracked field values of a
// ticket at a point in time. The orchestrating use case captures it before a
// mutation and diffs it against the post-mutation state; no transient state
// is stashed on the entity itself.
type Snapshot struct {
	Status      vo.TicketStatus
	Priority    vo.Priority
	AssigneeID  *uint
	Assignee    string // assignee display name, empty when unassigned
	Title       string
	Description string
}

// TakeSnapshot captures the tracked fields of t. assigneeName is the display
// name of the current assignee, resolved by the caller; it is ignored when
// the ticket is unassigned.
func TakeSnapshot(t *Ticket, assigneeName string) Snapshot {
	s := Snapshot{
		Status:      t.Status(),
		Priority:    t.Priority(),
		AssigneeID:  t.AssigneeID(),
		Title:       t.Title(),
		Description: t.Description(),
	}
	if t.AssigneeID() != nil {
		s.Assignee = assigneeName
	}
	return s
}

// FieldChange describes a single tracked field delta, with old and new
// values already rendered for the audit trail.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// Diff compares two snapshots field by field, in the fixed order status,
// priority, assignee, title, description, and returns one FieldChange per
// changed field. Scalar fields carry their values verbatim; the description
// carries placeholders; the assignee is rendered as a display name or the
// NoAssignee sentinel.
func Diff(old, current Snapshot) []FieldChange {
	var changes []FieldChange

	if old.Status != current.Status {
		changes = append(changes, FieldChange{
			Field: FieldStatus,
			Old:   old.Status.String(),
			New:   current.Status.String(),
		})
	}

	if old.Priority != current.Priority {
		changes = append(changes, FieldChange{
			Field: FieldPriority,
			Old:   old.Priority.String(),
			New:   current.Priority.String(),
		})
	}

	if !sameAssignee(old.AssigneeID, current.AssigneeID) {
		changes = append(changes, FieldChange{
			Field: FieldAssignee,
			Old:   renderAssignee(old.AssigneeID, old.Assignee),
			New:   renderAssignee(current.AssigneeID, current.Assignee),
		})
	}

	if old.Title != current.Title {
		changes = append(changes, FieldChange{
			Field: FieldTitle,
			Old:   old.Title,
			New:   current.Title,
		})
	}

	if old.Description != current.Description {
		changes = append(changes, FieldChange{
			Field: FieldDescription,
			Old:   DescriptionOldPlaceholder,
			New:   DescriptionNewPlaceholder,
		})
	}

	return changes
}

func sameAssignee(a, b *uint) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func renderAssignee(id *uint, name string) string {
	if id == nil {
		return NoAssignee
	}
	return name
}
