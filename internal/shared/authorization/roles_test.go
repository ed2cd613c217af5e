package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		actor    Role
		required Role
		want     bool
	}{
		{"admin can act as admin", RoleAdmin, RoleAdmin, true},
		{"admin can act as operator", RoleAdmin, RoleOperator, true},
		{"admin can act as user", RoleAdmin, RoleUser, true},
		{"operator can act as operator", RoleOperator, RoleOperator, true},
		{"operator can act as user", RoleOperator, RoleUser, true},
		{"operator cannot act as admin", RoleOperator, RoleAdmin, false},
		{"user cannot act as operator", RoleUser, RoleOperator, false},
		{"unknown actor is denied", Role("superuser"), RoleUser, false},
		{"unknown requirement is denied", RoleAdmin, Role("root"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.actor, tt.required))
		})
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleOperator, ParseRole("operator"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("unknown"))
}
