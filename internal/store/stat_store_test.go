package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/courtside/internal/dbtest"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTx(t *testing.T, db *sqlx.DB, fn func(tx *sqlx.Tx)) {
	t.Helper()
	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	fn(tx)
	require.NoError(t, tx.Commit())
}

func TestStatStore_EnsureAndDelta(t *testing.T) {
	db := dbtest.New(t)
	r := dbtest.NewRoster(t, db)
	s := NewStatStore(db)
	ctx := context.Background()
	player := r.PlayersA[0]

	withTx(t, db, func(tx *sqlx.Tx) {
		require.NoError(t, s.EnsureTx(ctx, tx, r.GameID, player))
		require.NoError(t, s.EnsureTx(ctx, tx, r.GameID, player), "ensure is idempotent")
		require.NoError(t, s.ApplyDeltaTx(ctx, tx, r.GameID, player, hoops.StatRebounds, 2))
		require.NoError(t, s.ApplyDeltaTx(ctx, tx, r.GameID, player, hoops.StatSteals, 1))
		require.NoError(t, s.ApplyDeltaTx(ctx, tx, r.GameID, player, hoops.StatSteals, -5))
	})

	stat, err := s.GetStat(ctx, r.GameID, player)
	require.NoError(t, err)
	assert.Equal(t, 2, stat.Rebounds)
	assert.Equal(t, 0, stat.Steals, "counters clamp at zero")

	var rows int
	require.NoError(t, db.Get(&rows, "SELECT COUNT(*) FROM player_stats WHERE game_id = ?", r.GameID))
	assert.Equal(t, 1, rows)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()
	assert.Error(t, s.ApplyDeltaTx(ctx, tx, r.GameID, player, hoops.StatType("points; DROP TABLE games"), 1))
}

func TestStatStore_ApplyShot(t *testing.T) {
	db := dbtest.New(t)
	r := dbtest.NewRoster(t, db)
	s := NewStatStore(db)
	ctx := context.Background()
	player := r.PlayersB[0]

	made3, _ := hoops.ShotDelta(3, true)
	missed2, _ := hoops.ShotDelta(2, false)
	made1, _ := hoops.ShotDelta(1, true)

	withTx(t, db, func(tx *sqlx.Tx) {
		require.NoError(t, s.EnsureTx(ctx, tx, r.GameID, player))
		require.NoError(t, s.ApplyShotTx(ctx, tx, r.GameID, player, made3))
		require.NoError(t, s.ApplyShotTx(ctx, tx, r.GameID, player, missed2))
		require.NoError(t, s.ApplyShotTx(ctx, tx, r.GameID, player, made1))
	})

	stat, err := s.GetStat(ctx, r.GameID, player)
	require.NoError(t, err)
	assert.Equal(t, 4, stat.Points)
	assert.Equal(t, 1, stat.FieldGoalsMade)
	assert.Equal(t, 2, stat.FieldGoalsAttempted)
	assert.Equal(t, 1, stat.ThreePointersMade)
	assert.Equal(t, 1, stat.ThreePointersAttempted)
	assert.Equal(t, 1, stat.FreeThrowsMade)
	assert.Equal(t, 1, stat.FreeThrowsAttempted)
}

func TestStatStore_ReplaceSnapshot(t *testing.T) {
	db := dbtest.New(t)
	r := dbtest.NewRoster(t, db)
	s := NewStatStore(db)
	ctx := context.Background()
	player := r.PlayersA[1]

	withTx(t, db, func(tx *sqlx.Tx) {
		require.NoError(t, s.EnsureTx(ctx, tx, r.GameID, player))
		require.NoError(t, s.ApplyDeltaTx(ctx, tx, r.GameID, player, hoops.StatPoints, 10))
		require.NoError(t, s.ApplyDeltaTx(ctx, tx, r.GameID, player, hoops.StatAssists, 4))
	})

	withTx(t, db, func(tx *sqlx.Tx) {
		require.NoError(t, s.ReplaceSnapshotTx(ctx, tx, &hoops.PlayerStat{
			GameID: r.GameID, PlayerID: player, Points: 6, MinutesPlayed: 20,
		}))
	})

	stat, err := s.GetStat(ctx, r.GameID, player)
	require.NoError(t, err)
	assert.Equal(t, 6, stat.Points, "snapshot overwrites instead of adding")
	assert.Equal(t, 0, stat.Assists)
	assert.Equal(t, 20, stat.MinutesPlayed)

	rows, err := s.ListBoxScore(ctx, r.GameID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ben", rows[0].Username)
	assert.Equal(t, r.TeamA, rows[0].TeamID)
}

func TestStatStore_SeasonTotals(t *testing.T) {
	db := dbtest.New(t)
	r := dbtest.NewRoster(t, db)
	s := NewStatStore(db)
	ctx := context.Background()
	player := r.PlayersA[0]

	second := dbtest.Game(t, db, r.LeagueID, r.TeamB, r.TeamA, "completed")
	cancelled := dbtest.Game(t, db, r.LeagueID, r.TeamB, r.TeamA, "cancelled")

	withTx(t, db, func(tx *sqlx.Tx) {
		for _, game := range []uuid.UUID{r.GameID, second, cancelled} {
			require.NoError(t, s.ReplaceSnapshotTx(ctx, tx, &hoops.PlayerStat{
				GameID: game, PlayerID: player, Points: 10, Rebounds: 5,
			}))
		}
		require.NoError(t, s.ReplaceSnapshotTx(ctx, tx, &hoops.PlayerStat{
			GameID: r.GameID, PlayerID: r.PlayersB[0], Points: 8,
		}))
	})

	totals, err := s.SeasonTotals(ctx, r.LeagueID, nil)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	mine, err := s.SeasonTotals(ctx, r.LeagueID, &player)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, mine[0].GamesPlayed, "cancelled games are excluded")
	assert.Equal(t, 20, mine[0].Points)
	assert.Equal(t, 10, mine[0].Rebounds)
	assert.Equal(t, "ann", mine[0].Username)
	assert.Equal(t, "Ballers", mine[0].TeamName)
}

func TestStatStore_Events(t *testing.T) {
	db := dbtest.New(t)
	r := dbtest.NewRoster(t, db)
	s := NewStatStore(db)
	ctx := context.Background()

	at := time.Date(2026, 2, 1, 18, 5, 0, 0, time.UTC)
	withTx(t, db, func(tx *sqlx.Tx) {
		require.NoError(t, s.InsertEventTx(ctx, tx, &hoops.GameEvent{
			GameID: r.GameID, PlayerID: r.PlayersA[0], Quarter: 1, Kind: hoops.ShotKind(3, true), Value: 3, CreatedAt: at,
		}))
		require.NoError(t, s.InsertEventTx(ctx, tx, &hoops.GameEvent{
			GameID: r.GameID, PlayerID: r.PlayersB[0], Quarter: 1, Kind: string(hoops.StatRebounds), Value: 1, CreatedAt: at,
		}))
	})

	events, err := s.ListEvents(ctx, r.GameID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "3pt_made", events[0].Kind)
	assert.Equal(t, "ann", events[0].Username)
	assert.Equal(t, "cat", events[1].Username)
}

func TestStatStore_PlayerLeagueIDs(t *testing.T) {
	db := dbtest.New(t)
	r := dbtest.NewRoster(t, db)
	s := NewStatStore(db)
	ctx := context.Background()

	ids, err := s.PlayerLeagueIDs(ctx, r.PlayersA[0])
	require.NoError(t, err)
	assert.Empty(t, ids)

	withTx(t, db, func(tx *sqlx.Tx) {
		require.NoError(t, s.EnsureTx(ctx, tx, r.GameID, r.PlayersA[0]))
	})

	ids, err = s.PlayerLeagueIDs(ctx, r.PlayersA[0])
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{r.LeagueID}, ids)
}
