package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserIs(t *testing.T) {
	var nobody *User
	assert.False(t, nobody.Is(RoleAdmin))

	coach := &User{Role: RoleCoach}
	assert.True(t, coach.Is(RoleCoach))
	assert.False(t, coach.Is(RoleAdmin))
}
