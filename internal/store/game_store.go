package store

import (
	"context"
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type GameStore struct {
	db *sqlx.DB
}

func NewGameStore(db *sqlx.DB) *GameStore {
	return &GameStore{db: db}
}

const (
	createGameQuery = `INSERT INTO games (id, league_id, team_a_id, team_b_id, scheduled_at, venue, status,
            team_a_score, team_b_score, team_a_active_players, team_b_active_players,
            total_quarters, minutes_per_quarter, timeouts_per_quarter)
        VALUES (:id, :league_id, :team_a_id, :team_b_id, :scheduled_at, :venue, :status,
            :team_a_score, :team_b_score, :team_a_active_players, :team_b_active_players,
            :total_quarters, :minutes_per_quarter, :timeouts_per_quarter)`
	updateMatchupQuery = `UPDATE games SET
            team_a_id = :team_a_id,
            team_b_id = :team_b_id,
            scheduled_at = :scheduled_at,
            venue = :venue,
            status = :status,
            total_quarters = :total_quarters,
            minutes_per_quarter = :minutes_per_quarter,
            timeouts_per_quarter = :timeouts_per_quarter,
            completed_at = :completed_at
        WHERE id = :id`
	// Written as one statement so a state update never lands half way.
	updateLiveStateQuery = `UPDATE games SET
            status = :status,
            current_quarter = :current_quarter,
            time_remaining = :time_remaining,
            team_a_score = :team_a_score,
            team_b_score = :team_b_score,
            team_a_fouls = :team_a_fouls,
            team_b_fouls = :team_b_fouls,
            team_a_timeouts = :team_a_timeouts,
            team_b_timeouts = :team_b_timeouts,
            team_a_active_players = :team_a_active_players,
            team_b_active_players = :team_b_active_players
        WHERE id = :id`
)

func (s *GameStore) CreateGame(ctx context.Context, game *hoops.Game) error {
	_, err := s.db.NamedExecContext(ctx, createGameQuery, game)
	return err
}

func (s *GameStore) GetGame(ctx context.Context, id uuid.UUID) (*hoops.Game, error) {
	return getGame(ctx, s.db, id)
}

func (s *GameStore) GetGameTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*hoops.Game, error) {
	return getGame(ctx, tx, id)
}

func getGame(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*hoops.Game, error) {
	var game hoops.Game
	err := sqlx.GetContext(ctx, q, &game, "SELECT * FROM games WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameStore) UpdateMatchup(ctx context.Context, game *hoops.Game) error {
	res, err := s.db.NamedExecContext(ctx, updateMatchupQuery, game)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *GameStore) UpdateLiveState(ctx context.Context, game *hoops.Game) error {
	res, err := s.db.NamedExecContext(ctx, updateLiveStateQuery, game)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// AddScoreTx increments one side's score in place.
func (s *GameStore) AddScoreTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, side hoops.Side, points int) error {
	column := "team_b_score"
	if side == hoops.SideA {
		column = "team_a_score"
	}
	res, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE games SET %s = %s + ? WHERE id = ?", column, column), points, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *GameStore) CompleteGame(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := s.db.ExecContext(ctx, "UPDATE games SET status = ?, completed_at = ? WHERE id = ?",
		hoops.GameCompleted, at, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// ListLeagueGames returns a league's games by tip-off, cancelled ones left out.
func (s *GameStore) ListLeagueGames(ctx context.Context, leagueID uuid.UUID) ([]hoops.Game, error) {
	var games []hoops.Game
	err := s.db.SelectContext(ctx, &games, `SELECT * FROM games
        WHERE league_id = ? AND status <> ?
        ORDER BY scheduled_at ASC, created_at ASC`, leagueID, hoops.GameCancelled)
	return games, err
}

func (s *GameStore) ListTeamGames(ctx context.Context, leagueID, teamID uuid.UUID) ([]hoops.Game, error) {
	var games []hoops.Game
	err := s.db.SelectContext(ctx, &games, `SELECT * FROM games
        WHERE league_id = ? AND status <> ? AND (team_a_id = ? OR team_b_id = ?)
        ORDER BY scheduled_at ASC, created_at ASC`, leagueID, hoops.GameCancelled, teamID, teamID)
	return games, err
}
