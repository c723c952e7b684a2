package store

import (
	"context"

	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery           = "SELECT * FROM users WHERE id = ?"
	getUserByProviderQuery = `
        SELECT * FROM users
        WHERE provider = ?
        AND provider_id = ?
    `
	createUserQuery = `
		INSERT INTO users (id, email, username, role, provider, provider_id, avatar_url) VALUES
		(:id, :email, :username, :role, :provider, :provider_id, :avatar_url)
	`
	updateUserNameAndAvatarQuery = `
		UPDATE users SET
		username = :username,
		avatar_url = :avatar_url
		WHERE id = :id
	`
	listUsersQuery   = "SELECT * FROM users ORDER BY role, username"
	setUserRoleQuery = "UPDATE users SET role = ? WHERE id = ?"
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUserByProvider(ctx context.Context, provider string, providerID string) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserByProviderQuery, provider, providerID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserQuery, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser stores a new user, as a player unless a role is set.
func (s *UserStore) CreateUser(ctx context.Context, user *users.User) error {
	if user.Role == "" {
		user.Role = users.RolePlayer
	}
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	return err
}

func (s *UserStore) UpdateUserNameAndAvatar(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, updateUserNameAndAvatarQuery, user)
	return err
}

func (s *UserStore) ListUsers(ctx context.Context) ([]users.User, error) {
	var list []users.User
	err := s.db.SelectContext(ctx, &list, listUsersQuery)
	return list, err
}

// SetRole returns sql.ErrNoRows when the user does not exist.
func (s *UserStore) SetRole(ctx context.Context, id uuid.UUID, role users.Role) error {
	res, err := s.db.ExecContext(ctx, setUserRoleQuery, role, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}
