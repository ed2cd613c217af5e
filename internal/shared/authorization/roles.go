// Package authorization defines the role model for the ticketing system.
// Every permission check in the application goes through Authorize, keyed on
// (actor role, required role).
package authorization

type Role string

const (
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// rank orders roles by privilege. A role satisfies any requirement of equal
// or lower rank.
var rank = map[Role]int{
	RoleUser:     1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := rank[r]
	return ok
}

func (r Role) IsOperator() bool {
	return r == RoleOperator
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Authorize reports whether an actor holding role acts with at least the
// privilege of required.
func Authorize(actor Role, required Role) bool {
	ar, ok := rank[actor]
	if !ok {
		return false
	}
	rr, ok := rank[required]
	if !ok {
		return false
	}
	return ar >= rr
}

// ParseRole maps a stored role string to a Role, defaulting to RoleUser for
// unknown values.
func ParseRole(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
