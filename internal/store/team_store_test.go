package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/AdamBeresnev/courtside/internal/dbtest"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamStore_Teams(t *testing.T) {
	db := dbtest.New(t)
	s := NewTeamStore(db)
	ctx := context.Background()

	coach := dbtest.User(t, db, "coach", "coach")
	team := &hoops.Team{ID: uuid.New(), Name: "Hoopers", JoinCode: "ABC123", CoachID: coach}
	require.NoError(t, s.CreateTeam(ctx, team))

	exists, err := s.JoinCodeExists(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.JoinCodeExists(ctx, "ZZZ999")
	require.NoError(t, err)
	assert.False(t, exists)

	byCode, err := s.GetTeamByJoinCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, team.ID, byCode.ID)

	byCoach, err := s.GetTeamByCoach(ctx, coach)
	require.NoError(t, err)
	assert.Equal(t, "Hoopers", byCoach.Name)

	// A coach owns at most one team
	second := &hoops.Team{ID: uuid.New(), Name: "Other", JoinCode: "DEF456", CoachID: coach}
	assert.Error(t, s.CreateTeam(ctx, second))

	_, err = s.GetTeam(ctx, uuid.New())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTeamStore_Players(t *testing.T) {
	db := dbtest.New(t)
	s := NewTeamStore(db)
	ctx := context.Background()

	coach := dbtest.User(t, db, "coach", "coach")
	teamID := dbtest.Team(t, db, "Hoopers", "ABC123", coach)
	ann := dbtest.User(t, db, "ann", "player")
	ben := dbtest.User(t, db, "ben", "player")

	p1 := &hoops.Player{ID: uuid.New(), UserID: ann, TeamID: teamID, Status: hoops.PlayerPending}
	require.NoError(t, s.CreatePlayer(ctx, p1))
	p2 := &hoops.Player{ID: uuid.New(), UserID: ben, TeamID: teamID, Status: hoops.PlayerApproved, JerseyNumber: utils.Ptr(23)}
	require.NoError(t, s.CreatePlayer(ctx, p2))

	dup := &hoops.Player{ID: uuid.New(), UserID: ann, TeamID: teamID, Status: hoops.PlayerPending}
	assert.Error(t, s.CreatePlayer(ctx, dup), "unique (user, team)")

	found, err := s.FindPlayer(ctx, ann, teamID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, p1.ID, found.ID)

	missing, err := s.FindPlayer(ctx, uuid.New(), teamID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	pending := hoops.PlayerPending
	roster, err := s.ListRoster(ctx, teamID, &pending)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "ann", roster[0].Username)

	roster, err = s.ListRoster(ctx, teamID, nil)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "ben", roster[0].Username, "numbered players come first")

	require.NoError(t, s.UpdatePlayerStatus(ctx, p1.ID, hoops.PlayerApproved))
	p1.JerseyNumber = utils.Ptr(7)
	p1.Position = utils.Ptr("PG")
	require.NoError(t, s.UpdatePlayerDetails(ctx, p1))

	got, err := s.GetPlayer(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, hoops.PlayerApproved, got.Status)
	assert.Equal(t, 7, *got.JerseyNumber)
	assert.Equal(t, "PG", *got.Position)

	memberships, err := s.ListMemberships(ctx, ann)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "Hoopers", memberships[0].TeamName)

	require.NoError(t, s.DeletePlayer(ctx, p1.ID))
	assert.ErrorIs(t, s.DeletePlayer(ctx, p1.ID), sql.ErrNoRows)
	assert.ErrorIs(t, s.UpdatePlayerStatus(ctx, p1.ID, hoops.PlayerRejected), sql.ErrNoRows)
}
