package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamStore struct {
	db *sqlx.DB
}

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeam(ctx context.Context, team *hoops.Team) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO teams (id, name, join_code, coach_id)
        VALUES (:id, :name, :join_code, :coach_id)`, team)
	return err
}

func (s *TeamStore) GetTeam(ctx context.Context, id uuid.UUID) (*hoops.Team, error) {
	var team hoops.Team
	err := s.db.GetContext(ctx, &team, "SELECT * FROM teams WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) GetTeamByCoach(ctx context.Context, coachID uuid.UUID) (*hoops.Team, error) {
	var team hoops.Team
	err := s.db.GetContext(ctx, &team, "SELECT * FROM teams WHERE coach_id = ?", coachID)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) GetTeamByJoinCode(ctx context.Context, code string) (*hoops.Team, error) {
	var team hoops.Team
	err := s.db.GetContext(ctx, &team, "SELECT * FROM teams WHERE join_code = ?", code)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM teams WHERE join_code = ?)", code)
	return exists, err
}

func (s *TeamStore) ListTeams(ctx context.Context) ([]hoops.Team, error) {
	var teams []hoops.Team
	err := s.db.SelectContext(ctx, &teams, "SELECT * FROM teams ORDER BY name ASC")
	return teams, err
}

func (s *TeamStore) CreatePlayer(ctx context.Context, player *hoops.Player) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO players (id, user_id, team_id, status, jersey_number, position)
        VALUES (:id, :user_id, :team_id, :status, :jersey_number, :position)`, player)
	return err
}

func (s *TeamStore) GetPlayer(ctx context.Context, id uuid.UUID) (*hoops.Player, error) {
	return getPlayer(ctx, s.db, id)
}

func (s *TeamStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*hoops.Player, error) {
	return getPlayer(ctx, tx, id)
}

func getPlayer(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*hoops.Player, error) {
	var player hoops.Player
	err := sqlx.GetContext(ctx, q, &player, "SELECT * FROM players WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// FindPlayer returns nil without an error when the user has no row for the team.
func (s *TeamStore) FindPlayer(ctx context.Context, userID, teamID uuid.UUID) (*hoops.Player, error) {
	var player hoops.Player
	err := s.db.GetContext(ctx, &player, "SELECT * FROM players WHERE user_id = ? AND team_id = ?", userID, teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *TeamStore) UpdatePlayerStatus(ctx context.Context, id uuid.UUID, status hoops.PlayerStatus) error {
	res, err := s.db.ExecContext(ctx, "UPDATE players SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *TeamStore) UpdatePlayerDetails(ctx context.Context, player *hoops.Player) error {
	res, err := s.db.NamedExecContext(ctx, `UPDATE players SET
        jersey_number = :jersey_number,
        position = :position
        WHERE id = :id`, player)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *TeamStore) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// ListRoster returns a team's players, optionally only those with the given status.
func (s *TeamStore) ListRoster(ctx context.Context, teamID uuid.UUID, status *hoops.PlayerStatus) ([]hoops.RosterEntry, error) {
	query := `SELECT p.*, u.username FROM players p
        JOIN users u ON u.id = p.user_id
        WHERE p.team_id = ?`
	args := []interface{}{teamID}
	if status != nil {
		query += " AND p.status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY p.jersey_number IS NULL, p.jersey_number ASC, u.username ASC"

	var roster []hoops.RosterEntry
	err := s.db.SelectContext(ctx, &roster, query, args...)
	return roster, err
}

func (s *TeamStore) ListMemberships(ctx context.Context, userID uuid.UUID) ([]hoops.Membership, error) {
	var memberships []hoops.Membership
	err := s.db.SelectContext(ctx, &memberships, `SELECT p.*, t.name AS team_name FROM players p
        JOIN teams t ON t.id = p.team_id
        WHERE p.user_id = ?
        ORDER BY p.created_at DESC`, userID)
	return memberships, err
}
