// Package dbtest sets up throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/AdamBeresnev/courtside/internal/db"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// migrationsDir resolves the repo's migrations folder from this file's location
// so callers in any package get the same path.
func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// New creates an in-memory SQLite database and applies migrations
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Open("file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// Every new connection would get its own empty in-memory database.
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, migrationsDir())
	require.NoError(t, err, "Failed to apply migrations")

	t.Cleanup(func() { database.Close() })
	return database
}

// User inserts a user with the given role and returns its id.
func User(t *testing.T, database *sqlx.DB, name string, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := database.Exec("INSERT INTO users (id, email, username, role) VALUES (?, ?, ?, ?)",
		id, name+"@example.com", name, role)
	require.NoError(t, err)
	return id
}

// Team inserts a team owned by coachID.
func Team(t *testing.T, database *sqlx.DB, name string, code string, coachID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := database.Exec("INSERT INTO teams (id, name, join_code, coach_id) VALUES (?, ?, ?, ?)",
		id, name, code, coachID)
	require.NoError(t, err)
	return id
}

// Player inserts a roster row.
func Player(t *testing.T, database *sqlx.DB, userID, teamID uuid.UUID, status string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := database.Exec("INSERT INTO players (id, user_id, team_id, status) VALUES (?, ?, ?, ?)",
		id, userID, teamID, status)
	require.NoError(t, err)
	return id
}

// League inserts a league; active leagues get is_active set.
func League(t *testing.T, database *sqlx.DB, name string, status string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := database.Exec("INSERT INTO leagues (id, name, year, status, is_active) VALUES (?, ?, ?, ?, ?)",
		id, name, 2026, status, status == "active")
	require.NoError(t, err)
	return id
}

// Attach puts a team in a league.
func Attach(t *testing.T, database *sqlx.DB, leagueID, teamID uuid.UUID) {
	t.Helper()
	_, err := database.Exec("INSERT INTO league_teams (league_id, team_id) VALUES (?, ?)", leagueID, teamID)
	require.NoError(t, err)
}

// Game inserts a scheduled game with no live state.
func Game(t *testing.T, database *sqlx.DB, leagueID, teamA, teamB uuid.UUID, status string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := database.Exec(`INSERT INTO games (id, league_id, team_a_id, team_b_id, scheduled_at, status)
        VALUES (?, ?, ?, ?, ?, ?)`, id, leagueID, teamA, teamB, time.Now().UTC(), status)
	require.NoError(t, err)
	return id
}

// Roster is a ready-made league with two teams, their coaches and two approved players each.
type Roster struct {
	LeagueID           uuid.UUID
	CoachA, CoachB     uuid.UUID
	TeamA, TeamB       uuid.UUID
	PlayersA, PlayersB []uuid.UUID
	GameID             uuid.UUID
}

// NewRoster builds a Roster inside an active league with one scheduled game.
func NewRoster(t *testing.T, database *sqlx.DB) Roster {
	t.Helper()
	r := Roster{}
	r.LeagueID = League(t, database, "Winter League", "active")
	r.CoachA = User(t, database, "coach_a", "coach")
	r.CoachB = User(t, database, "coach_b", "coach")
	r.TeamA = Team(t, database, "Ballers", "AAAAAA", r.CoachA)
	r.TeamB = Team(t, database, "Dunkers", "BBBBBB", r.CoachB)
	Attach(t, database, r.LeagueID, r.TeamA)
	Attach(t, database, r.LeagueID, r.TeamB)

	for _, name := range []string{"ann", "ben"} {
		u := User(t, database, name, "player")
		r.PlayersA = append(r.PlayersA, Player(t, database, u, r.TeamA, "approved"))
	}
	for _, name := range []string{"cat", "dan"} {
		u := User(t, database, name, "player")
		r.PlayersB = append(r.PlayersB, Player(t, database, u, r.TeamB, "approved"))
	}

	r.GameID = Game(t, database, r.LeagueID, r.TeamA, r.TeamB, "scheduled")
	return r
}
