package user

import "ticketsys/internal/shared/authorization"

// Tracked field names for the user change tracker.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldRole     = "role"
)

// Snapshot holds the tracked field values of a user before a mutation. Like
// the ticket snapshot it is an explicit value object passed through the
// orchestrating use case; the password is deliberately not tracked.
type Snapshot struct {
	Username string
	Email    string
	Role     authorization.Role
}

func TakeSnapshot(u *User) Snapshot {
	return Snapshot{
		Username: u.Username(),
		Email:    u.Email(),
		Role:     u.Role(),
	}
}

// FieldChange mirrors the ticket tracker's delta type.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// Diff compares snapshots in the fixed order username, email, role.
func Diff(old, current Snapshot) []FieldChange {
	var changes []FieldChange

	if old.Username != current.Username {
		changes = append(changes, FieldChange{Field: FieldUsername, Old: old.Username, New: current.Username})
	}
	if old.Email != current.Email {
		changes = append(changes, FieldChange{Field: FieldEmail, Old: old.Email, New: current.Email})
	}
	if old.Role != current.Role {
		changes = append(changes, FieldChange{Field: FieldRole, Old: old.Role.String(), New: current.Role.String()})
	}

	return changes
}
