package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/courtside/internal/cache"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SeasonService struct {
	db       *sqlx.DB
	stores   *store.Stores
	cache    cache.Cache
	defaults hoops.MVPWeights
}

func NewSeasonService(db *sqlx.DB, stores *store.Stores, c cache.Cache, defaults hoops.MVPWeights) *SeasonService {
	return &SeasonService{db: db, stores: stores, cache: c, defaults: defaults}
}

type LeagueInput struct {
	Name      string
	Year      int
	StartDate *time.Time
	EndDate   *time.Time
	// Nil leaves the stored weights untouched, so the configured defaults keep applying.
	Weights *hoops.MVPWeights
}

func (in LeagueInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("league name is required")
	}
	if in.Year < 1900 || in.Year > 2999 {
		return invalid("year %d is out of range", in.Year)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return invalid("end date is before the start date")
	}
	return nil
}

func (s *SeasonService) CreateLeague(ctx context.Context, in LeagueInput) (*hoops.League, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	league := &hoops.League{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Year:      in.Year,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    hoops.LeagueUpcoming,
	}
	if in.Weights != nil {
		league.SetWeights(*in.Weights)
	}

	if err := s.stores.Leagues.CreateLeague(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return league, nil
}

func (s *SeasonService) UpdateLeague(ctx context.Context, id uuid.UUID, in LeagueInput) (*hoops.League, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	league, err := s.stores.Leagues.GetLeague(ctx, id)
	if err != nil {
		return nil, lookup(err, "league")
	}

	league.Name = strings.TrimSpace(in.Name)
	league.Year = in.Year
	league.StartDate = in.StartDate
	league.EndDate = in.EndDate
	if in.Weights != nil {
		league.SetWeights(*in.Weights)
	}

	if err := s.stores.Leagues.UpdateLeague(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to update league: %w", err)
	}

	invalidateLeaderboards(ctx, s.cache, league.ID)
	return league, nil
}

// ActivateLeague makes id the only active league. Leagues active before are completed.
func (s *SeasonService) ActivateLeague(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.stores.Leagues.GetLeagueTx(ctx, tx, id); err != nil {
		return lookup(err, "league")
	}

	if err := s.stores.Leagues.DeactivateOthersTx(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to deactivate leagues: %w", err)
	}
	if err := s.stores.Leagues.SetStatusTx(ctx, tx, id, hoops.LeagueActive); err != nil {
		return fmt.Errorf("failed to activate league: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	invalidateLeaderboards(ctx, s.cache, id)
	return nil
}

// SetLeagueStatus moves a league to status. Activation goes through ActivateLeague.
func (s *SeasonService) SetLeagueStatus(ctx context.Context, id uuid.UUID, status hoops.LeagueStatus) error {
	if !status.Valid() {
		return invalid("unknown league status %q", status)
	}
	if status == hoops.LeagueActive {
		return s.ActivateLeague(ctx, id)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.stores.Leagues.SetStatusTx(ctx, tx, id, status); err != nil {
		return lookup(err, "league")
	}
	return tx.Commit()
}

// AttachTeam adds a team to a league. Attaching twice is not an error.
func (s *SeasonService) AttachTeam(ctx context.Context, leagueID, teamID uuid.UUID) error {
	if _, err := s.stores.Leagues.GetLeague(ctx, leagueID); err != nil {
		return lookup(err, "league")
	}
	if _, err := s.stores.Teams.GetTeam(ctx, teamID); err != nil {
		return lookup(err, "team")
	}

	exists, err := s.stores.Leagues.TeamInLeague(ctx, leagueID, teamID)
	if err != nil {
		return fmt.Errorf("failed to check league membership: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.stores.Leagues.AttachTeam(ctx, leagueID, teamID); err != nil {
		return fmt.Errorf("failed to attach team: %w", err)
	}

	invalidateLeaderboards(ctx, s.cache, leagueID)
	return nil
}

func (s *SeasonService) DetachTeam(ctx context.Context, leagueID, teamID uuid.UUID) error {
	if err := s.stores.Leagues.DetachTeam(ctx, leagueID, teamID); err != nil {
		return fmt.Errorf("failed to detach team: %w", err)
	}

	invalidateLeaderboards(ctx, s.cache, leagueID)
	return nil
}

type LeagueOverview struct {
	League  hoops.League
	Weights hoops.MVPWeights
	Teams   []hoops.Team
}

type SeasonManagement struct {
	Leagues  []LeagueOverview
	AllTeams []hoops.Team
	Defaults hoops.MVPWeights
}

func (s *SeasonService) ListLeagues(ctx context.Context) (*SeasonManagement, error) {
	leagues, err := s.stores.Leagues.ListLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load leagues: %w", err)
	}

	out := &SeasonManagement{Defaults: s.defaults}
	for _, l := range leagues {
		teams, err := s.stores.Leagues.ListLeagueTeams(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load league teams: %w", err)
		}
		out.Leagues = append(out.Leagues, LeagueOverview{League: l, Weights: l.Weights(s.defaults), Teams: teams})
	}

	out.AllTeams, err = s.stores.Teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	return out, nil
}

// LeagueWeights returns the MVP weights a league scores with.
func (s *SeasonService) LeagueWeights(ctx context.Context, id uuid.UUID) (hoops.MVPWeights, error) {
	league, err := s.stores.Leagues.GetLeague(ctx, id)
	if err != nil {
		return hoops.MVPWeights{}, lookup(err, "league")
	}
	return league.Weights(s.defaults), nil
}

// ActiveLeague returns the league new matchups go into, or an invalid error when none is active.
func (s *SeasonService) ActiveLeague(ctx context.Context) (*hoops.League, error) {
	league, err := s.stores.Leagues.GetActiveLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active league: %w", err)
	}
	if league == nil {
		return nil, invalid("no league is active")
	}
	return league, nil
}
