package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type StatStore struct {
	db *sqlx.DB
}

func NewStatStore(db *sqlx.DB) *StatStore {
	return &StatStore{db: db}
}

const (
	ensureStatQuery = `INSERT INTO player_stats (id, game_id, player_id) VALUES (?, ?, ?)
        ON CONFLICT (game_id, player_id) DO NOTHING`
	applyShotQuery = `UPDATE player_stats SET
            points = points + ?,
            field_goals_made = field_goals_made + ?,
            field_goals_attempted = field_goals_attempted + ?,
            three_pointers_made = three_pointers_made + ?,
            three_pointers_attempted = three_pointers_attempted + ?,
            free_throws_made = free_throws_made + ?,
            free_throws_attempted = free_throws_attempted + ?
        WHERE game_id = ? AND player_id = ?`
	replaceSnapshotQuery = `INSERT INTO player_stats (id, game_id, player_id,
            points, rebounds, assists, steals, blocks, fouls, turnovers,
            field_goals_made, field_goals_attempted, three_pointers_made, three_pointers_attempted,
            free_throws_made, free_throws_attempted, minutes_played)
        VALUES (:id, :game_id, :player_id,
            :points, :rebounds, :assists, :steals, :blocks, :fouls, :turnovers,
            :field_goals_made, :field_goals_attempted, :three_pointers_made, :three_pointers_attempted,
            :free_throws_made, :free_throws_attempted, :minutes_played)
        ON CONFLICT (game_id, player_id) DO UPDATE SET
            points = excluded.points,
            rebounds = excluded.rebounds,
            assists = excluded.assists,
            steals = excluded.steals,
            blocks = excluded.blocks,
            fouls = excluded.fouls,
            turnovers = excluded.turnovers,
            field_goals_made = excluded.field_goals_made,
            field_goals_attempted = excluded.field_goals_attempted,
            three_pointers_made = excluded.three_pointers_made,
            three_pointers_attempted = excluded.three_pointers_attempted,
            free_throws_made = excluded.free_throws_made,
            free_throws_attempted = excluded.free_throws_attempted,
            minutes_played = excluded.minutes_played`
	seasonTotalsQuery = `SELECT
            p.id AS player_id,
            p.team_id AS team_id,
            u.username AS username,
            t.name AS team_name,
            COUNT(ps.id) AS games_played,
            SUM(ps.points) AS points,
            SUM(ps.rebounds) AS rebounds,
            SUM(ps.assists) AS assists,
            SUM(ps.steals) AS steals,
            SUM(ps.blocks) AS blocks,
            SUM(ps.fouls) AS fouls,
            SUM(ps.turnovers) AS turnovers,
            SUM(ps.field_goals_made) AS field_goals_made,
            SUM(ps.field_goals_attempted) AS field_goals_attempted,
            SUM(ps.three_pointers_made) AS three_pointers_made,
            SUM(ps.three_pointers_attempted) AS three_pointers_attempted,
            SUM(ps.free_throws_made) AS free_throws_made,
            SUM(ps.free_throws_attempted) AS free_throws_attempted
        FROM player_stats ps
        JOIN games g ON g.id = ps.game_id
        JOIN players p ON p.id = ps.player_id
        JOIN users u ON u.id = p.user_id
        JOIN teams t ON t.id = p.team_id
        WHERE g.league_id = ? AND g.status <> ?`
	seasonTotalsGroupBy = ` GROUP BY p.id, p.team_id, u.username, t.name`
)

// EnsureTx creates the zeroed row for a player in a game if it is missing.
func (s *StatStore) EnsureTx(ctx context.Context, tx *sqlx.Tx, gameID, playerID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, ensureStatQuery, uuid.New(), gameID, playerID)
	return err
}

// ApplyShotTx adds one shot's counters to an existing row.
func (s *StatStore) ApplyShotTx(ctx context.Context, tx *sqlx.Tx, gameID, playerID uuid.UUID, d hoops.FieldGoalDelta) error {
	res, err := tx.ExecContext(ctx, applyShotQuery,
		d.Points, d.FieldGoalsMade, d.FieldGoalsAttempted,
		d.ThreePointersMade, d.ThreePointersAttempted,
		d.FreeThrowsMade, d.FreeThrowsAttempted,
		gameID, playerID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// ApplyDeltaTx adds value to one counter, never letting it drop below zero.
func (s *StatStore) ApplyDeltaTx(ctx context.Context, tx *sqlx.Tx, gameID, playerID uuid.UUID, stat hoops.StatType, value int) error {
	if _, ok := hoops.ParseStatType(string(stat)); !ok {
		return fmt.Errorf("unknown stat type %q", stat)
	}
	query := fmt.Sprintf("UPDATE player_stats SET %s = MAX(%s + ?, 0) WHERE game_id = ? AND player_id = ?", stat, stat)
	res, err := tx.ExecContext(ctx, query, value, gameID, playerID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// ReplaceSnapshotTx overwrites every counter of the row, creating it if needed.
func (s *StatStore) ReplaceSnapshotTx(ctx context.Context, tx *sqlx.Tx, stat *hoops.PlayerStat) error {
	if stat.ID == uuid.Nil {
		stat.ID = uuid.New()
	}
	_, err := tx.NamedExecContext(ctx, replaceSnapshotQuery, stat)
	return err
}

func (s *StatStore) GetStat(ctx context.Context, gameID, playerID uuid.UUID) (*hoops.PlayerStat, error) {
	return getStat(ctx, s.db, gameID, playerID)
}

func (s *StatStore) GetStatTx(ctx context.Context, tx *sqlx.Tx, gameID, playerID uuid.UUID) (*hoops.PlayerStat, error) {
	return getStat(ctx, tx, gameID, playerID)
}

func getStat(ctx context.Context, q sqlx.QueryerContext, gameID, playerID uuid.UUID) (*hoops.PlayerStat, error) {
	var stat hoops.PlayerStat
	err := sqlx.GetContext(ctx, q, &stat, "SELECT * FROM player_stats WHERE game_id = ? AND player_id = ?", gameID, playerID)
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *StatStore) ListBoxScore(ctx context.Context, gameID uuid.UUID) ([]hoops.BoxScoreRow, error) {
	var rows []hoops.BoxScoreRow
	err := s.db.SelectContext(ctx, &rows, `SELECT ps.*, p.team_id, p.jersey_number, u.username
        FROM player_stats ps
        JOIN players p ON p.id = ps.player_id
        JOIN users u ON u.id = p.user_id
        WHERE ps.game_id = ?
        ORDER BY ps.points DESC, u.username ASC`, gameID)
	return rows, err
}

// SeasonTotals sums every player's lines over a league's non-cancelled games.
// A nil playerID returns all players.
func (s *StatStore) SeasonTotals(ctx context.Context, leagueID uuid.UUID, playerID *uuid.UUID) ([]hoops.SeasonTotals, error) {
	query := seasonTotalsQuery
	args := []interface{}{leagueID, hoops.GameCancelled}
	if playerID != nil {
		query += " AND p.id = ?"
		args = append(args, *playerID)
	}
	query += seasonTotalsGroupBy

	var totals []hoops.SeasonTotals
	err := s.db.SelectContext(ctx, &totals, query, args...)
	return totals, err
}

// PlayerLeagueIDs lists the leagues a player has stat lines in.
func (s *StatStore) PlayerLeagueIDs(ctx context.Context, playerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.SelectContext(ctx, &ids, `SELECT DISTINCT g.league_id FROM player_stats ps
        JOIN games g ON g.id = ps.game_id
        WHERE ps.player_id = ?`, playerID)
	return ids, err
}

func (s *StatStore) InsertEventTx(ctx context.Context, tx *sqlx.Tx, event *hoops.GameEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO game_events (id, game_id, player_id, quarter, kind, value, created_at)
        VALUES (:id, :game_id, :player_id, :quarter, :kind, :value, :created_at)`, event)
	return err
}

func (s *StatStore) ListEvents(ctx context.Context, gameID uuid.UUID) ([]hoops.GameEventView, error) {
	var events []hoops.GameEventView
	err := s.db.SelectContext(ctx, &events, `SELECT e.*, u.username FROM game_events e
        JOIN players p ON p.id = e.player_id
        JOIN users u ON u.id = p.user_id
        WHERE e.game_id = ?
        ORDER BY e.created_at ASC, e.rowid ASC`, gameID)
	return events, err
}
