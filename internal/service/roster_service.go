package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/AdamBeresnev/courtside/internal/cache"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/store"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength   = 6
	maxCodeAttempts  = 50
	maxTeamNameLen   = 50
)

type RosterService struct {
	db      *sqlx.DB
	stores  *store.Stores
	cache   cache.Cache
	newCode func() (string, error)
}

func NewRosterService(db *sqlx.DB, stores *store.Stores, c cache.Cache) *RosterService {
	return &RosterService{db: db, stores: stores, cache: c, newCode: GenerateJoinCode}
}

// GenerateJoinCode returns a random code of uppercase letters and digits.
func GenerateJoinCode() (string, error) {
	var sb strings.Builder
	limit := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(joinCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func (s *RosterService) uniqueJoinCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		exists, err := s.stores.Teams.JoinCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free join code after %d attempts", maxCodeAttempts)
}

func (s *RosterService) CreateTeam(ctx context.Context, coach *users.User, name string) (*hoops.Team, error) {
	if !coach.Is(users.RoleCoach) {
		return nil, forbidden("only coaches can create teams")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("team name is required")
	}
	if len(name) > maxTeamNameLen {
		return nil, invalid("team name must be at most %d characters", maxTeamNameLen)
	}

	if _, err := s.stores.Teams.GetTeamByCoach(ctx, coach.ID); err == nil {
		return nil, conflict("you already coach a team")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing team: %w", err)
	}

	code, err := s.uniqueJoinCode(ctx)
	if err != nil {
		return nil, err
	}

	team := &hoops.Team{
		ID:       uuid.New(),
		Name:     name,
		JoinCode: code,
		CoachID:  coach.ID,
	}
	if err := s.stores.Teams.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// JoinTeam files a pending request for player to join the team owning code.
func (s *RosterService) JoinTeam(ctx context.Context, player *users.User, code string) (*hoops.Team, error) {
	if !player.Is(users.RolePlayer) {
		return nil, forbidden("only players can join teams")
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != joinCodeLength {
		return nil, invalid("join codes are %d characters long", joinCodeLength)
	}

	team, err := s.stores.Teams.GetTeamByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no team uses join code %s", ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to look up join code: %w", err)
	}

	existing, err := s.stores.Teams.FindPlayer(ctx, player.ID, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		switch existing.Status {
		case hoops.PlayerPending:
			return nil, conflict("your request to join %s is already pending", team.Name)
		case hoops.PlayerApproved:
			return nil, conflict("you are already a member of %s", team.Name)
		default:
			return nil, conflict("your request to join %s was rejected", team.Name)
		}
	}

	request := &hoops.Player{
		ID:     uuid.New(),
		UserID: player.ID,
		TeamID: team.ID,
		Status: hoops.PlayerPending,
	}
	if err := s.stores.Teams.CreatePlayer(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}
	return team, nil
}

// ownedPlayer loads a player row after checking coach runs teamID and the player is on it.
func (s *RosterService) ownedPlayer(ctx context.Context, coach *users.User, teamID, playerID uuid.UUID) (*hoops.Team, *hoops.Player, error) {
	if coach == nil {
		return nil, nil, forbidden("login required")
	}

	team, err := s.stores.Teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, nil, lookup(err, "team")
	}
	if team.CoachID != coach.ID {
		return nil, nil, forbidden("only the team's coach can manage its roster")
	}

	player, err := s.stores.Teams.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, lookup(err, "player")
	}
	if player.TeamID != teamID {
		return nil, nil, fmt.Errorf("%w: player is not on this team", ErrNotFound)
	}
	return team, player, nil
}

func (s *RosterService) ApproveRequest(ctx context.Context, coach *users.User, teamID, playerID uuid.UUID) error {
	return s.decide(ctx, coach, teamID, playerID, hoops.PlayerApproved)
}

func (s *RosterService) RejectRequest(ctx context.Context, coach *users.User, teamID, playerID uuid.UUID) error {
	return s.decide(ctx, coach, teamID, playerID, hoops.PlayerRejected)
}

func (s *RosterService) decide(ctx context.Context, coach *users.User, teamID, playerID uuid.UUID, status hoops.PlayerStatus) error {
	_, player, err := s.ownedPlayer(ctx, coach, teamID, playerID)
	if err != nil {
		return err
	}
	if player.Status != hoops.PlayerPending {
		return invalid("only pending requests can be %s", status)
	}
	if err := s.stores.Teams.UpdatePlayerStatus(ctx, playerID, status); err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	return nil
}

// RemovePlayer deletes a player along with their stat lines.
func (s *RosterService) RemovePlayer(ctx context.Context, coach *users.User, teamID, playerID uuid.UUID) error {
	if _, _, err := s.ownedPlayer(ctx, coach, teamID, playerID); err != nil {
		return err
	}
	leagueIDs, err := s.stores.Stats.PlayerLeagueIDs(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to load player leagues: %w", err)
	}
	if err := s.stores.Teams.DeletePlayer(ctx, playerID); err != nil {
		return lookup(err, "player")
	}

	invalidateLeaderboards(ctx, s.cache, leagueIDs...)
	return nil
}

func (s *RosterService) UpdatePlayerDetails(ctx context.Context, coach *users.User, teamID, playerID uuid.UUID, jersey *int, position string) error {
	_, player, err := s.ownedPlayer(ctx, coach, teamID, playerID)
	if err != nil {
		return err
	}
	if jersey != nil && (*jersey < 0 || *jersey > 99) {
		return invalid("jersey number must be between 0 and 99")
	}

	player.JerseyNumber = jersey
	player.Position = utils.StringOrNil(position)
	if err := s.stores.Teams.UpdatePlayerDetails(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}

// MyTeams is what the teams page shows the current user.
type MyTeams struct {
	Coached     *hoops.Team
	Roster      []hoops.RosterEntry
	Memberships []hoops.Membership
}

func (s *RosterService) ListTeamsForUser(ctx context.Context, u *users.User) (*MyTeams, error) {
	out := &MyTeams{}
	if u == nil {
		return out, nil
	}

	if u.Is(users.RoleCoach) {
		team, err := s.stores.Teams.GetTeamByCoach(ctx, u.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to load team: %w", err)
		}
		if team != nil {
			out.Coached = team
			out.Roster, err = s.stores.Teams.ListRoster(ctx, team.ID, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to load roster: %w", err)
			}
		}
	}

	memberships, err := s.stores.Teams.ListMemberships(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	out.Memberships = memberships
	return out, nil
}
