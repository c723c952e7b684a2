package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type LeagueStore struct {
	db *sqlx.DB
}

func NewLeagueStore(db *sqlx.DB) *LeagueStore {
	return &LeagueStore{db: db}
}

const (
	createLeagueQuery = `INSERT INTO leagues (id, name, year, start_date, end_date, status, is_active,
            mvp_points_weight, mvp_rebounds_weight, mvp_assists_weight, mvp_steals_weight, mvp_blocks_weight,
            mvp_efficiency_weight, mvp_foul_penalty, mvp_turnover_penalty)
        VALUES (:id, :name, :year, :start_date, :end_date, :status, :is_active,
            :mvp_points_weight, :mvp_rebounds_weight, :mvp_assists_weight, :mvp_steals_weight, :mvp_blocks_weight,
            :mvp_efficiency_weight, :mvp_foul_penalty, :mvp_turnover_penalty)`
	updateLeagueQuery = `UPDATE leagues SET
            name = :name,
            year = :year,
            start_date = :start_date,
            end_date = :end_date,
            mvp_points_weight = :mvp_points_weight,
            mvp_rebounds_weight = :mvp_rebounds_weight,
            mvp_assists_weight = :mvp_assists_weight,
            mvp_steals_weight = :mvp_steals_weight,
            mvp_blocks_weight = :mvp_blocks_weight,
            mvp_efficiency_weight = :mvp_efficiency_weight,
            mvp_foul_penalty = :mvp_foul_penalty,
            mvp_turnover_penalty = :mvp_turnover_penalty
        WHERE id = :id`
)

func (s *LeagueStore) CreateLeague(ctx context.Context, league *hoops.League) error {
	_, err := s.db.NamedExecContext(ctx, createLeagueQuery, league)
	return err
}

func (s *LeagueStore) UpdateLeague(ctx context.Context, league *hoops.League) error {
	res, err := s.db.NamedExecContext(ctx, updateLeagueQuery, league)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *LeagueStore) GetLeague(ctx context.Context, id uuid.UUID) (*hoops.League, error) {
	return getLeague(ctx, s.db, id)
}

func (s *LeagueStore) GetLeagueTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*hoops.League, error) {
	return getLeague(ctx, tx, id)
}

func getLeague(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*hoops.League, error) {
	var league hoops.League
	err := sqlx.GetContext(ctx, q, &league, "SELECT * FROM leagues WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &league, nil
}

// GetActiveLeague returns nil without an error when no league is active.
func (s *LeagueStore) GetActiveLeague(ctx context.Context) (*hoops.League, error) {
	var league hoops.League
	err := s.db.GetContext(ctx, &league, "SELECT * FROM leagues WHERE is_active = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (s *LeagueStore) ListLeagues(ctx context.Context) ([]hoops.League, error) {
	var leagues []hoops.League
	err := s.db.SelectContext(ctx, &leagues, "SELECT * FROM leagues ORDER BY year DESC, created_at DESC")
	return leagues, err
}

// DeactivateOthersTx completes every active league except keepID.
func (s *LeagueStore) DeactivateOthersTx(ctx context.Context, tx *sqlx.Tx, keepID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `UPDATE leagues SET status = ?, is_active = 0
        WHERE id <> ? AND (is_active = 1 OR status = ?)`, hoops.LeagueCompleted, keepID, hoops.LeagueActive)
	return err
}

// SetStatusTx keeps is_active in step with status.
func (s *LeagueStore) SetStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status hoops.LeagueStatus) error {
	res, err := tx.ExecContext(ctx, "UPDATE leagues SET status = ?, is_active = ? WHERE id = ?",
		status, status == hoops.LeagueActive, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *LeagueStore) TeamInLeague(ctx context.Context, leagueID, teamID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM league_teams WHERE league_id = ? AND team_id = ?)", leagueID, teamID)
	return exists, err
}

func (s *LeagueStore) AttachTeam(ctx context.Context, leagueID, teamID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO league_teams (league_id, team_id) VALUES (?, ?)", leagueID, teamID)
	return err
}

func (s *LeagueStore) DetachTeam(ctx context.Context, leagueID, teamID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM league_teams WHERE league_id = ? AND team_id = ?", leagueID, teamID)
	return err
}

func (s *LeagueStore) ListLeagueTeams(ctx context.Context, leagueID uuid.UUID) ([]hoops.Team, error) {
	var teams []hoops.Team
	err := s.db.SelectContext(ctx, &teams, `SELECT t.* FROM teams t
        JOIN league_teams lt ON lt.team_id = t.id
        WHERE lt.league_id = ?
        ORDER BY t.name ASC`, leagueID)
	return teams, err
}
