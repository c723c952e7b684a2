package users

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const UserKey ContextKey = "user"

// GuestUserID is the fixed account behind "continue as guest".
var GuestUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCoach     Role = "coach"
	RoleReferee   Role = "referee"
	RolePlayer    Role = "player"
	RoleCommittee Role = "committee"
)

var Roles = []Role{RoleAdmin, RoleCoach, RoleReferee, RolePlayer, RoleCommittee}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID         uuid.UUID `db:"id"`
	Email      string    `db:"email"`
	Username   string    `db:"username"`
	Role       Role      `db:"role"`
	CreatedAt  time.Time `db:"created_at"`
	Provider   *string   `db:"provider"`
	ProviderID *string   `db:"provider_id"`
	AvatarURL  *string   `db:"avatar_url"`
}

func (u *User) Is(role Role) bool {
	return u != nil && u.Role == role
}
