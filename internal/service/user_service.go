package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/courtside/internal/store"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth"
)

type UserService struct {
	db         *sqlx.DB
	store      *store.UserStore
	adminEmail string
}

// NewUserService creates users as players, except the one whose email matches adminEmail.
func NewUserService(db *sqlx.DB, store *store.UserStore, adminEmail string) *UserService {
	return &UserService{db: db, store: store, adminEmail: strings.ToLower(strings.TrimSpace(adminEmail))}
}

func (s *UserService) roleFor(email string) users.Role {
	if s.adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		return users.RoleAdmin
	}
	return users.RolePlayer
}

func (s *UserService) FindOrCreateUserByProvider(ctx context.Context, gothUser goth.User) (*users.User, error) {
	user, err := s.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)

	if err == nil {
		name := displayName(gothUser)
		if utils.OrZero(user.AvatarURL) != gothUser.AvatarURL || user.Username != name {
			user.AvatarURL = utils.StringOrNil(gothUser.AvatarURL)
			user.Username = name
			if err := s.store.UpdateUserNameAndAvatar(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to refresh profile: %w", err)
			}
		}
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		newUser := &users.User{
			ID:         uuid.New(),
			Email:      gothUser.Email,
			Username:   displayName(gothUser),
			Role:       s.roleFor(gothUser.Email),
			Provider:   utils.Ptr(gothUser.Provider),
			ProviderID: utils.Ptr(gothUser.UserID),
			AvatarURL:  utils.StringOrNil(gothUser.AvatarURL),
		}
		err := s.store.CreateUser(ctx, newUser)
		return newUser, err
	}

	return nil, err
}

func displayName(u goth.User) string {
	for _, name := range []string{u.NickName, u.Name, u.Email} {
		if strings.TrimSpace(name) != "" {
			return name
		}
	}
	return "Player"
}

func (s *UserService) EnsureGuestUser(ctx context.Context) (*users.User, error) {
	user, err := s.store.GetUser(ctx, users.GuestUserID)
	if err == nil {
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		guestUser := &users.User{
			ID:       users.GuestUserID,
			Email:    "guest@courtside.local",
			Username: "Guest",
			Role:     users.RolePlayer,
		}
		err := s.store.CreateUser(ctx, guestUser)
		return guestUser, err
	}
	return nil, err
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, lookup(err, "user")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]users.User, error) {
	list, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return list, nil
}

// SetUserRole changes another user's role. Admins cannot change their own.
func (s *UserService) SetUserRole(ctx context.Context, actor *users.User, id uuid.UUID, role users.Role) error {
	if !role.Valid() {
		return invalid("unknown role %q", role)
	}
	if actor != nil && actor.ID == id {
		return invalid("you cannot change your own role")
	}
	if err := s.store.SetRole(ctx, id, role); err != nil {
		return lookup(err, "user")
	}
	return nil
}
