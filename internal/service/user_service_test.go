package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/courtside/internal/dbtest"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateUserByProvider(t *testing.T) {
	env := setupTestDB(t)
	svc := NewUserService(env.db, env.stores.Users, "Boss@Example.com")
	ctx := context.Background()

	gothUser := goth.User{
		Provider:  "discord",
		UserID:    "1234",
		Email:     "ann@example.com",
		NickName:  "ann",
		AvatarURL: "https://cdn.example.com/ann.png",
	}

	created, err := svc.FindOrCreateUserByProvider(ctx, gothUser)
	require.NoError(t, err)
	assert.Equal(t, "ann", created.Username)
	assert.Equal(t, users.RolePlayer, created.Role)
	assert.Equal(t, "https://cdn.example.com/ann.png", utils.OrZero(created.AvatarURL))

	gothUser.NickName = "annie"
	gothUser.AvatarURL = ""
	again, err := svc.FindOrCreateUserByProvider(ctx, gothUser)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "annie", again.Username)
	assert.Nil(t, again.AvatarURL)

	stored, err := env.stores.Users.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "annie", stored.Username)
}

func TestFindOrCreateUserByProvider_AdminEmail(t *testing.T) {
	env := setupTestDB(t)
	svc := NewUserService(env.db, env.stores.Users, "Boss@Example.com")
	ctx := context.Background()

	admin, err := svc.FindOrCreateUserByProvider(ctx, goth.User{
		Provider: "google",
		UserID:   "g-1",
		Email:    "boss@example.com",
		Name:     "The Boss",
	})
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, admin.Role)
	assert.Equal(t, "The Boss", admin.Username)

	// The role is only assigned on creation
	require.NoError(t, env.stores.Users.SetRole(ctx, admin.ID, users.RoleCoach))
	again, err := svc.FindOrCreateUserByProvider(ctx, goth.User{Provider: "google", UserID: "g-1", Email: "boss@example.com", Name: "The Boss"})
	require.NoError(t, err)
	assert.Equal(t, users.RoleCoach, again.Role)
}

func TestDisplayName(t *testing.T) {
	testCases := []struct {
		name string
		user goth.User
		want string
	}{
		{"nickname first", goth.User{NickName: "nick", Name: "Full Name", Email: "a@b.c"}, "nick"},
		{"then name", goth.User{Name: "Full Name", Email: "a@b.c"}, "Full Name"},
		{"then email", goth.User{Email: "a@b.c"}, "a@b.c"},
		{"fallback", goth.User{NickName: "  "}, "Player"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, displayName(tc.user))
		})
	}
}

func TestEnsureGuestUser(t *testing.T) {
	env := setupTestDB(t)
	svc := NewUserService(env.db, env.stores.Users, "")
	ctx := context.Background()

	guest, err := svc.EnsureGuestUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, users.GuestUserID, guest.ID)
	assert.Equal(t, users.RolePlayer, guest.Role)

	again, err := svc.EnsureGuestUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, again.ID)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSetUserRole(t *testing.T) {
	env := setupTestDB(t)
	svc := NewUserService(env.db, env.stores.Users, "")
	ctx := context.Background()

	admin := mustUser(t, env, dbtest.User(t, env.db, "root", "admin"))
	target := dbtest.User(t, env.db, "ann", "player")

	require.NoError(t, svc.SetUserRole(ctx, admin, target, users.RoleReferee))
	u, err := svc.GetUser(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, users.RoleReferee, u.Role)

	assert.ErrorIs(t, svc.SetUserRole(ctx, admin, target, "owner"), ErrInvalid)
	assert.ErrorIs(t, svc.SetUserRole(ctx, admin, admin.ID, users.RolePlayer), ErrInvalid)
	assert.ErrorIs(t, svc.SetUserRole(ctx, admin, uuid.New(), users.RoleCoach), ErrNotFound)

	_, err = svc.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
