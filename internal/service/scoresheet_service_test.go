package service

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/courtside/internal/dbtest"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGameState_Defaults(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	state, err := env.scoresheet.GetGameState(ctx, r.GameID)
	require.NoError(t, err)

	assert.Equal(t, 1, state.Quarter)
	assert.Equal(t, 720, state.TimeRemaining)
	assert.False(t, state.IsRunning)
	assert.Equal(t, hoops.FallbackTimeouts, state.TeamATimeouts, "no stored config falls back to 6")
	assert.Equal(t, hoops.FallbackTimeouts, state.TeamBTimeouts)
	assert.Equal(t, 0, state.TeamAFouls)
	assert.Empty(t, state.TeamAActivePlayers)
	assert.Equal(t, hoops.DefaultGameConfig(), state.Config)

	_, err = env.scoresheet.GetGameState(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetGameState_TimeoutsFromConfig(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	game, err := env.scoresheet.CreateMatchup(ctx, MatchupInput{
		LeagueID:    r.LeagueID,
		TeamAID:     r.TeamA,
		TeamBID:     r.TeamB,
		ScheduledAt: tipOff,
		Config:      GameConfigPatch{MinutesPerQuarter: utils.Ptr(10)},
	})
	require.NoError(t, err)

	state, err := env.scoresheet.GetGameState(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, state.TeamATimeouts)
	assert.Equal(t, 8, state.TeamBTimeouts)
	assert.Equal(t, 720, state.TimeRemaining, "the clock default ignores the quarter length")
}

func TestUpdateGameState_Validation(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	outsider := dbtest.Player(t, env.db, dbtest.User(t, env.db, "eve", "player"),
		dbtest.Team(t, env.db, "Outsiders", "CCCCCC", dbtest.User(t, env.db, "coach_c", "coach")), "approved")

	testCases := []struct {
		name   string
		update GameStateUpdate
	}{
		{"quarter zero", GameStateUpdate{Quarter: utils.Ptr(0)}},
		{"quarter past the configured count", GameStateUpdate{Quarter: utils.Ptr(5)}},
		{"negative clock", GameStateUpdate{TimeRemaining: utils.Ptr(-1)}},
		{"negative score", GameStateUpdate{TeamAScore: utils.Ptr(-2)}},
		{"negative fouls", GameStateUpdate{TeamBFouls: utils.Ptr(-1)}},
		{"too many timeouts", GameStateUpdate{TeamATimeouts: utils.Ptr(7)}},
		{"negative timeouts", GameStateUpdate{TeamBTimeouts: utils.Ptr(-1)}},
		{"unknown active player", GameStateUpdate{TeamAActivePlayers: &[]uuid.UUID{uuid.New()}}},
		{"active player from the other team", GameStateUpdate{TeamAActivePlayers: &[]uuid.UUID{r.PlayersB[0]}}},
		{"active player outside the game", GameStateUpdate{TeamBActivePlayers: &[]uuid.UUID{outsider}}},
		{"duplicate active player", GameStateUpdate{TeamAActivePlayers: &[]uuid.UUID{r.PlayersA[0], r.PlayersA[0]}}},
		// Valid fields alongside an invalid one must not be written either
		{"mixed valid and invalid", GameStateUpdate{TeamAScore: utils.Ptr(10), TeamBFouls: utils.Ptr(-1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.scoresheet.UpdateGameState(ctx, r.GameID, tc.update)
			assert.ErrorIs(t, err, ErrInvalid)

			game, err := env.stores.Games.GetGame(ctx, r.GameID)
			require.NoError(t, err)
			assert.Equal(t, 0, game.TeamAScore)
			assert.Nil(t, game.CurrentQuarter)
			assert.Nil(t, game.TeamBFouls)
			assert.Empty(t, game.TeamAActivePlayers)
		})
	}
}

func TestUpdateGameState_Partial(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	state, err := env.scoresheet.UpdateGameState(ctx, r.GameID, GameStateUpdate{
		Quarter:            utils.Ptr(2),
		TeamAScore:         utils.Ptr(12),
		TeamATimeouts:      utils.Ptr(6),
		TeamAActivePlayers: &[]uuid.UUID{r.PlayersA[0], r.PlayersA[1]},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, state.Quarter)
	assert.Equal(t, 12, state.TeamAScore)

	state, err = env.scoresheet.UpdateGameState(ctx, r.GameID, GameStateUpdate{TimeRemaining: utils.Ptr(95)})
	require.NoError(t, err)
	assert.Equal(t, 2, state.Quarter, "unspecified fields keep their value")
	assert.Equal(t, 12, state.TeamAScore)
	assert.Equal(t, 95, state.TimeRemaining)
	assert.Equal(t, 6, state.TeamATimeouts)
	assert.Equal(t, []uuid.UUID{r.PlayersA[0], r.PlayersA[1]}, state.TeamAActivePlayers)

	state, err = env.scoresheet.UpdateGameState(ctx, r.GameID, GameStateUpdate{TeamAActivePlayers: &[]uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, state.TeamAActivePlayers, "an empty list clears the lineup")
}

func TestNextStatus(t *testing.T) {
	testCases := []struct {
		current  hoops.GameStatus
		running  bool
		expected hoops.GameStatus
	}{
		{hoops.GameScheduled, true, hoops.GameInProgress},
		{hoops.GameScheduled, false, hoops.GameScheduled},
		{hoops.GameInProgress, false, hoops.GameScheduled},
		{hoops.GameInProgress, true, hoops.GameInProgress},
		{hoops.GameCompleted, true, hoops.GameCompleted},
		{hoops.GameCompleted, false, hoops.GameCompleted},
		{hoops.GameCancelled, true, hoops.GameCancelled},
		{hoops.GameCancelled, false, hoops.GameCancelled},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, nextStatus(tc.current, tc.running), "%s running=%v", tc.current, tc.running)
	}
}

func TestRecordFieldGoal(t *testing.T) {
	testCases := []struct {
		name      string
		points    int
		made      bool
		teamA     bool
		expected  hoops.PlayerStat
		scoreA    int
		scoreB    int
		eventKind string
	}{
		{
			name:      "made two for team A",
			points:    2,
			made:      true,
			teamA:     true,
			expected:  hoops.PlayerStat{Points: 2, FieldGoalsMade: 1, FieldGoalsAttempted: 1},
			scoreA:    2,
			eventKind: "2pt_made",
		},
		{
			name:      "missed three",
			points:    3,
			made:      false,
			teamA:     true,
			expected:  hoops.PlayerStat{FieldGoalsAttempted: 1, ThreePointersAttempted: 1},
			eventKind: "3pt_missed",
		},
		{
			name:      "made three for team B",
			points:    3,
			made:      true,
			expected:  hoops.PlayerStat{Points: 3, FieldGoalsMade: 1, FieldGoalsAttempted: 1, ThreePointersMade: 1, ThreePointersAttempted: 1},
			scoreB:    3,
			eventKind: "3pt_made",
		},
		{
			name:      "made free throw",
			points:    1,
			made:      true,
			teamA:     true,
			expected:  hoops.PlayerStat{Points: 1, FreeThrowsMade: 1, FreeThrowsAttempted: 1},
			scoreA:    1,
			eventKind: "1pt_made",
		},
		{
			name:      "missed free throw",
			points:    1,
			made:      false,
			expected:  hoops.PlayerStat{FreeThrowsAttempted: 1},
			eventKind: "1pt_missed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTestDB(t)
			r := dbtest.NewRoster(t, env.db)
			ctx := context.Background()

			player := r.PlayersB[0]
			if tc.teamA {
				player = r.PlayersA[0]
			}

			state, err := env.scoresheet.RecordFieldGoal(ctx, r.GameID, player, tc.points, tc.made, 2)
			require.NoError(t, err)
			assert.Equal(t, tc.scoreA, state.TeamAScore)
			assert.Equal(t, tc.scoreB, state.TeamBScore)

			stat, err := env.stores.Stats.GetStat(ctx, r.GameID, player)
			require.NoError(t, err)
			assert.Equal(t, tc.expected.Counters(), stat.Counters())

			events, err := env.stores.Stats.ListEvents(ctx, r.GameID)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tc.eventKind, events[0].Kind)
			assert.Equal(t, 2, events[0].Quarter)
			assert.True(t, tipOff.Equal(events[0].CreatedAt))
		})
	}
}

func TestRecordFieldGoal_Accumulates(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.scoresheet.RecordFieldGoal(ctx, r.GameID, r.PlayersA[1], 2, true, 1)
		require.NoError(t, err)
	}
	state, err := env.scoresheet.RecordFieldGoal(ctx, r.GameID, r.PlayersA[1], 2, false, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, state.TeamAScore)

	stat, err := env.stores.Stats.GetStat(ctx, r.GameID, r.PlayersA[1])
	require.NoError(t, err)
	assert.Equal(t, 6, stat.Points)
	assert.Equal(t, 3, stat.FieldGoalsMade)
	assert.Equal(t, 4, stat.FieldGoalsAttempted)
}

func TestRecordFieldGoal_Rejects(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	_, err := env.scoresheet.RecordFieldGoal(ctx, r.GameID, r.PlayersA[0], 4, true, 1)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = env.scoresheet.RecordFieldGoal(ctx, r.GameID, r.PlayersA[0], 2, true, 0)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = env.scoresheet.RecordFieldGoal(ctx, r.GameID, uuid.New(), 2, true, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.scoresheet.RecordFieldGoal(ctx, uuid.New(), r.PlayersA[0], 2, true, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	game, err := env.stores.Games.GetGame(ctx, r.GameID)
	require.NoError(t, err)
	assert.Equal(t, 0, game.TeamAScore)

	var rows int
	require.NoError(t, env.db.Get(&rows, "SELECT COUNT(*) FROM player_stats"))
	assert.Equal(t, 0, rows, "rejected shots leave no stat line behind")
}

func TestRecordPlayerStat(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()
	player := r.PlayersB[1]

	stat, err := env.scoresheet.RecordPlayerStat(ctx, r.GameID, player, "rebounds", 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, stat.Rebounds)

	stat, err = env.scoresheet.RecordPlayerStat(ctx, r.GameID, player, "rebounds", -100, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stat.Rebounds, "counters are clamped at zero")

	stat, err = env.scoresheet.RecordPlayerStat(ctx, r.GameID, player, "turnovers", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, stat.Turnovers)
	assert.Equal(t, 0, stat.Rebounds)

	_, err = env.scoresheet.RecordPlayerStat(ctx, r.GameID, player, "minutes_played", 1, 1)
	assert.ErrorIs(t, err, ErrInvalid, "minutes are only set through a bulk save")

	_, err = env.scoresheet.RecordPlayerStat(ctx, r.GameID, uuid.New(), "steals", 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	events, err := env.stores.Stats.ListEvents(ctx, r.GameID)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	game, err := env.stores.Games.GetGame(ctx, r.GameID)
	require.NoError(t, err)
	assert.Equal(t, 0, game.TeamBScore, "plain stat changes never touch the score")
}

func TestSavePlayerStats(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	_, err := env.scoresheet.RecordPlayerStat(ctx, r.GameID, r.PlayersA[0], "assists", 7, 1)
	require.NoError(t, err)

	outsider := dbtest.Player(t, env.db, dbtest.User(t, env.db, "eve", "player"),
		dbtest.Team(t, env.db, "Outsiders", "CCCCCC", dbtest.User(t, env.db, "coach_c", "coach")), "approved")

	result, err := env.scoresheet.SavePlayerStats(ctx, r.GameID, []hoops.PlayerStat{
		{PlayerID: r.PlayersA[0], Points: 14, Rebounds: 3, MinutesPlayed: 30},
		{PlayerID: r.PlayersB[0], Points: 9},
		{PlayerID: uuid.New(), Points: 50},
		{PlayerID: outsider, Points: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, &SaveResult{Saved: 2, Skipped: 2}, result)

	stat, err := env.stores.Stats.GetStat(ctx, r.GameID, r.PlayersA[0])
	require.NoError(t, err)
	assert.Equal(t, 14, stat.Points)
	assert.Equal(t, 0, stat.Assists, "a snapshot overwrites, missing counters become zero")
	assert.Equal(t, 30, stat.MinutesPlayed)

	_, err = env.stores.Stats.GetStat(ctx, r.GameID, outsider)
	assert.Error(t, err)
}

func TestSavePlayerStats_NegativeRejectsAll(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	_, err := env.scoresheet.SavePlayerStats(ctx, r.GameID, []hoops.PlayerStat{
		{PlayerID: r.PlayersA[0], Points: 10},
		{PlayerID: r.PlayersA[1], Fouls: -1},
	})
	assert.ErrorIs(t, err, ErrInvalid)

	var rows int
	require.NoError(t, env.db.Get(&rows, "SELECT COUNT(*) FROM player_stats"))
	assert.Equal(t, 0, rows)
}

func TestCompleteGame(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	game, err := env.scoresheet.CompleteGame(ctx, r.GameID)
	require.NoError(t, err)
	assert.Equal(t, hoops.GameCompleted, game.Status)
	require.NotNil(t, game.CompletedAt)
	assert.True(t, tipOff.Equal(*game.CompletedAt))

	env.clock.Advance(time.Hour)
	again, err := env.scoresheet.CompleteGame(ctx, r.GameID)
	require.NoError(t, err)
	assert.True(t, tipOff.Equal(*again.CompletedAt), "completing twice keeps the first timestamp")

	cancelled := dbtest.Game(t, env.db, r.LeagueID, r.TeamA, r.TeamB, "cancelled")
	_, err = env.scoresheet.CompleteGame(ctx, cancelled)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = env.scoresheet.CompleteGame(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatchups(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	coachC := dbtest.User(t, env.db, "coach_c", "coach")
	unattached := dbtest.Team(t, env.db, "Outsiders", "CCCCCC", coachC)

	invalidInputs := []struct {
		name string
		in   MatchupInput
	}{
		{"same team twice", MatchupInput{LeagueID: r.LeagueID, TeamAID: r.TeamA, TeamBID: r.TeamA, ScheduledAt: tipOff}},
		{"missing team", MatchupInput{LeagueID: r.LeagueID, TeamAID: r.TeamA, ScheduledAt: tipOff}},
		{"unknown team", MatchupInput{LeagueID: r.LeagueID, TeamAID: r.TeamA, TeamBID: uuid.New(), ScheduledAt: tipOff}},
		{"team outside the league", MatchupInput{LeagueID: r.LeagueID, TeamAID: r.TeamA, TeamBID: unattached, ScheduledAt: tipOff}},
		{"unknown league", MatchupInput{LeagueID: uuid.New(), TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff}},
		{"no tip-off", MatchupInput{LeagueID: r.LeagueID, TeamAID: r.TeamA, TeamBID: r.TeamB}},
		{"zero quarters", MatchupInput{LeagueID: r.LeagueID, TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff,
			Config: GameConfigPatch{TotalQuarters: utils.Ptr(0)}}},
	}
	for _, tc := range invalidInputs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.scoresheet.CreateMatchup(ctx, tc.in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	game, err := env.scoresheet.CreateMatchup(ctx, MatchupInput{
		LeagueID: r.LeagueID, TeamAID: r.TeamB, TeamBID: r.TeamA, ScheduledAt: tipOff, Venue: "  Rec Center ",
	})
	require.NoError(t, err)
	assert.Equal(t, hoops.GameScheduled, game.Status)
	assert.Equal(t, "Rec Center", *game.Venue)
	assert.Equal(t, 4, *game.TotalQuarters)
	assert.Equal(t, 12, *game.MinutesPerQuarter)
	assert.Equal(t, 2, *game.TimeoutsPerQuarter)

	updated, err := env.scoresheet.UpdateMatchup(ctx, game.ID, MatchupInput{
		TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff.Add(24 * time.Hour), Status: hoops.GameCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, r.TeamA, updated.TeamAID)
	assert.Nil(t, updated.Venue)
	assert.Equal(t, hoops.GameCancelled, updated.Status)

	_, err = env.scoresheet.UpdateMatchup(ctx, game.ID, MatchupInput{
		TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff, Status: "postponed",
	})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = env.scoresheet.UpdateMatchup(ctx, uuid.New(), MatchupInput{TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff})
	assert.ErrorIs(t, err, ErrNotFound)

	index, err := env.scoresheet.ListScoresheetGames(ctx)
	require.NoError(t, err)
	require.NotNil(t, index.League)
	require.Len(t, index.Games, 1, "cancelled matchups drop out of listings")
	assert.Equal(t, r.GameID, index.Games[0].ID)
	assert.Equal(t, "Ballers", index.Games[0].TeamAName)
	assert.Equal(t, "Dunkers", index.Games[0].TeamBName)
}

func TestUpdateMatchup_StatusLifecycle(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()
	edit := func(status hoops.GameStatus) MatchupInput {
		return MatchupInput{TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff, Status: status}
	}

	env.clock.Advance(time.Hour)
	game, err := env.scoresheet.UpdateMatchup(ctx, r.GameID, edit(hoops.GameCompleted))
	require.NoError(t, err)
	assert.Equal(t, hoops.GameCompleted, game.Status)

	stored, err := env.stores.Games.GetGame(ctx, r.GameID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt, "completing from the edit form stamps the time")
	assert.True(t, tipOff.Add(time.Hour).Equal(*stored.CompletedAt))

	for _, status := range []hoops.GameStatus{hoops.GameScheduled, hoops.GameInProgress, hoops.GameCancelled} {
		_, err = env.scoresheet.UpdateMatchup(ctx, r.GameID, edit(status))
		assert.ErrorIs(t, err, ErrInvalid, "completed game moved to %s", status)
	}

	_, err = env.scoresheet.UpdateMatchup(ctx, r.GameID, edit(hoops.GameCompleted))
	require.NoError(t, err, "keeping the status is not a change")

	stored, err = env.stores.Games.GetGame(ctx, r.GameID)
	require.NoError(t, err)
	assert.Equal(t, hoops.GameCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, tipOff.Add(time.Hour).Equal(*stored.CompletedAt))

	other, err := env.scoresheet.CreateMatchup(ctx, MatchupInput{
		LeagueID: r.LeagueID, TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff,
	})
	require.NoError(t, err)
	_, err = env.scoresheet.UpdateMatchup(ctx, other.ID, edit(hoops.GameCancelled))
	require.NoError(t, err)
	_, err = env.scoresheet.UpdateMatchup(ctx, other.ID, edit(hoops.GameScheduled))
	assert.ErrorIs(t, err, ErrInvalid, "cancelled games stay cancelled")
}

func TestUpdateMatchup_KeepsStoredConfig(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	game, err := env.scoresheet.CreateMatchup(ctx, MatchupInput{
		LeagueID: r.LeagueID, TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff,
		Config: GameConfigPatch{MinutesPerQuarter: utils.Ptr(10), TimeoutsPerQuarter: utils.Ptr(1)},
	})
	require.NoError(t, err)

	updated, err := env.scoresheet.UpdateMatchup(ctx, game.ID, MatchupInput{
		TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff,
		Config: GameConfigPatch{TotalQuarters: utils.Ptr(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, hoops.GameConfig{TotalQuarters: 2, MinutesPerQuarter: 10, TimeoutsPerQuarter: 1}, updated.Config())

	_, err = env.scoresheet.UpdateMatchup(ctx, game.ID, MatchupInput{
		TeamAID: r.TeamA, TeamBID: r.TeamB, ScheduledAt: tipOff,
		Config: GameConfigPatch{MinutesPerQuarter: utils.Ptr(0)},
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestListScoresheetGames_NoActiveLeague(t *testing.T) {
	env := setupTestDB(t)
	index, err := env.scoresheet.ListScoresheetGames(context.Background())
	require.NoError(t, err)
	assert.Nil(t, index.League)
	assert.Empty(t, index.Games)
}

func TestGetScoresheet(t *testing.T) {
	env := setupTestDB(t)
	r := dbtest.NewRoster(t, env.db)
	ctx := context.Background()

	_, err := env.scoresheet.RecordFieldGoal(ctx, r.GameID, r.PlayersA[0], 3, true, 1)
	require.NoError(t, err)

	board, err := env.scoresheet.GetScoresheet(ctx, r.GameID)
	require.NoError(t, err)
	assert.Equal(t, 3, board.State.TeamAScore)
	assert.Len(t, board.RosterA, 2)
	assert.Len(t, board.RosterB, 2)
	assert.Equal(t, 3, board.Lines[r.PlayersA[0]].Points)
	assert.Len(t, board.Teams, 2)
}

// Full lifecycle of a game from league setup to completion.
func TestGameLifecycle(t *testing.T) {
	env := setupTestDB(t)
	ctx := context.Background()

	league, err := env.seasons.CreateLeague(ctx, LeagueInput{Name: "Spring", Year: 2026})
	require.NoError(t, err)
	require.NoError(t, env.seasons.ActivateLeague(ctx, league.ID))

	coachA := dbtest.User(t, env.db, "coach_a", "coach")
	coachB := dbtest.User(t, env.db, "coach_b", "coach")
	teamA, err := env.roster.CreateTeam(ctx, mustUser(t, env, coachA), "Ballers")
	require.NoError(t, err)
	teamB, err := env.roster.CreateTeam(ctx, mustUser(t, env, coachB), "Dunkers")
	require.NoError(t, err)

	require.NoError(t, env.seasons.AttachTeam(ctx, league.ID, teamA.ID))
	require.NoError(t, env.seasons.AttachTeam(ctx, league.ID, teamB.ID))

	game, err := env.scoresheet.CreateMatchup(ctx, MatchupInput{
		LeagueID: league.ID, TeamAID: teamA.ID, TeamBID: teamB.ID, ScheduledAt: tipOff,
	})
	require.NoError(t, err)
	assert.Equal(t, hoops.GameScheduled, game.Status)
	assert.Equal(t, 0, game.TeamAScore)
	assert.Equal(t, 0, game.TeamBScore)

	state, err := env.scoresheet.UpdateGameState(ctx, game.ID, GameStateUpdate{IsRunning: utils.Ptr(true)})
	require.NoError(t, err)
	assert.True(t, state.IsRunning)
	assert.Equal(t, hoops.GameInProgress, state.Status)

	env.clock.Advance(48 * time.Minute)
	completed, err := env.scoresheet.CompleteGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, hoops.GameCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.True(t, tipOff.Add(48*time.Minute).Equal(*completed.CompletedAt))

	state, err = env.scoresheet.UpdateGameState(ctx, game.ID, GameStateUpdate{IsRunning: utils.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, hoops.GameCompleted, state.Status, "stopping the clock never reopens a finished game")

	stored, err := env.stores.Games.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, hoops.GameCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)
}
