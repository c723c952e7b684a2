package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AdamBeresnev/courtside/internal/cache"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/store"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
)

type ScoresheetService struct {
	db       *sqlx.DB
	stores   *store.Stores
	cache    cache.Cache
	clock    clockwork.Clock
	defaults hoops.GameConfig
}

func NewScoresheetService(db *sqlx.DB, stores *store.Stores, c cache.Cache, clock clockwork.Clock, defaults hoops.GameConfig) *ScoresheetService {
	return &ScoresheetService{db: db, stores: stores, cache: c, clock: clock, defaults: defaults}
}

// GameStateUpdate is a partial update of the live board. Nil fields are left alone.
type GameStateUpdate struct {
	Quarter            *int         `json:"quarter"`
	TimeRemaining      *int         `json:"time_remaining"`
	IsRunning          *bool        `json:"is_running"`
	TeamAScore         *int         `json:"team_a_score"`
	TeamBScore         *int         `json:"team_b_score"`
	TeamAFouls         *int         `json:"team_a_fouls"`
	TeamBFouls         *int         `json:"team_b_fouls"`
	TeamATimeouts      *int         `json:"team_a_timeouts"`
	TeamBTimeouts      *int         `json:"team_b_timeouts"`
	TeamAActivePlayers *[]uuid.UUID `json:"team_a_active_players"`
	TeamBActivePlayers *[]uuid.UUID `json:"team_b_active_players"`
}

func (s *ScoresheetService) GetGameState(ctx context.Context, gameID uuid.UUID) (*hoops.GameState, error) {
	game, err := s.stores.Games.GetGame(ctx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}
	state := hoops.MaterializeState(game)
	return &state, nil
}

func (s *ScoresheetService) UpdateGameState(ctx context.Context, gameID uuid.UUID, u GameStateUpdate) (*hoops.GameState, error) {
	game, err := s.stores.Games.GetGame(ctx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}

	if err := s.validateStateUpdate(ctx, game, u); err != nil {
		return nil, err
	}

	if u.Quarter != nil {
		game.CurrentQuarter = u.Quarter
	}
	if u.TimeRemaining != nil {
		game.TimeRemaining = u.TimeRemaining
	}
	if u.TeamAScore != nil {
		game.TeamAScore = *u.TeamAScore
	}
	if u.TeamBScore != nil {
		game.TeamBScore = *u.TeamBScore
	}
	if u.TeamAFouls != nil {
		game.TeamAFouls = u.TeamAFouls
	}
	if u.TeamBFouls != nil {
		game.TeamBFouls = u.TeamBFouls
	}
	if u.TeamATimeouts != nil {
		game.TeamATimeouts = u.TeamATimeouts
	}
	if u.TeamBTimeouts != nil {
		game.TeamBTimeouts = u.TeamBTimeouts
	}
	if u.TeamAActivePlayers != nil {
		game.TeamAActivePlayers = hoops.IDList(*u.TeamAActivePlayers)
	}
	if u.TeamBActivePlayers != nil {
		game.TeamBActivePlayers = hoops.IDList(*u.TeamBActivePlayers)
	}
	if u.IsRunning != nil {
		game.Status = nextStatus(game.Status, *u.IsRunning)
	}

	if err := s.stores.Games.UpdateLiveState(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game state: %w", err)
	}

	state := hoops.MaterializeState(game)
	return &state, nil
}

// nextStatus maps the running flag onto the game lifecycle. Completed and
// cancelled games never leave their state this way.
func nextStatus(current hoops.GameStatus, running bool) hoops.GameStatus {
	if current.Terminal() {
		return current
	}
	if running {
		return hoops.GameInProgress
	}
	if current == hoops.GameInProgress {
		return hoops.GameScheduled
	}
	return current
}

func (s *ScoresheetService) validateStateUpdate(ctx context.Context, game *hoops.Game, u GameStateUpdate) error {
	if u.Quarter != nil && (*u.Quarter < 1 || *u.Quarter > game.Quarters()) {
		return invalid("quarter must be between 1 and %d", game.Quarters())
	}
	if u.TimeRemaining != nil && *u.TimeRemaining < 0 {
		return invalid("time remaining cannot be negative")
	}

	nonNegative := map[string]*int{
		"team A score": u.TeamAScore,
		"team B score": u.TeamBScore,
		"team A fouls": u.TeamAFouls,
		"team B fouls": u.TeamBFouls,
	}
	for name, v := range nonNegative {
		if v != nil && *v < 0 {
			return invalid("%s cannot be negative", name)
		}
	}

	maxTimeouts := game.MaxTimeouts()
	for name, v := range map[string]*int{"team A timeouts": u.TeamATimeouts, "team B timeouts": u.TeamBTimeouts} {
		if v != nil && (*v < 0 || *v > maxTimeouts) {
			return invalid("%s must be between 0 and %d", name, maxTimeouts)
		}
	}

	if u.TeamAActivePlayers != nil {
		if err := s.checkActivePlayers(ctx, *u.TeamAActivePlayers, game.TeamAID); err != nil {
			return err
		}
	}
	if u.TeamBActivePlayers != nil {
		if err := s.checkActivePlayers(ctx, *u.TeamBActivePlayers, game.TeamBID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScoresheetService) checkActivePlayers(ctx context.Context, ids []uuid.UUID, teamID uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return invalid("player %s listed twice", id)
		}
		seen[id] = true

		player, err := s.stores.Teams.GetPlayer(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return invalid("player %s does not exist", id)
		}
		if err != nil {
			return fmt.Errorf("failed to load player: %w", err)
		}
		if player.TeamID != teamID {
			return invalid("player %s is not on this team", id)
		}
	}
	return nil
}

// RecordFieldGoal applies one shot to the shooter's line and, when made, to the team score.
func (s *ScoresheetService) RecordFieldGoal(ctx context.Context, gameID, playerID uuid.UUID, points int, made bool, quarter int) (*hoops.GameState, error) {
	delta, ok := hoops.ShotDelta(points, made)
	if !ok {
		return nil, invalid("points must be 1, 2 or 3")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	game, player, err := s.loadGameAndPlayerTx(ctx, tx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if err := checkQuarter(game, quarter); err != nil {
		return nil, err
	}

	if err := s.stores.Stats.EnsureTx(ctx, tx, gameID, playerID); err != nil {
		return nil, fmt.Errorf("failed to create stat line: %w", err)
	}
	if err := s.stores.Stats.ApplyShotTx(ctx, tx, gameID, playerID, delta); err != nil {
		return nil, fmt.Errorf("failed to record field goal: %w", err)
	}

	if made {
		if err := s.stores.Games.AddScoreTx(ctx, tx, gameID, game.SideOf(player.TeamID), points); err != nil {
			return nil, fmt.Errorf("failed to update score: %w", err)
		}
	}

	event := &hoops.GameEvent{
		GameID:    gameID,
		PlayerID:  playerID,
		Quarter:   quarter,
		Kind:      hoops.ShotKind(points, made),
		Value:     delta.Points,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.stores.Stats.InsertEventTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to log event: %w", err)
	}

	game, err = s.stores.Games.GetGameTx(ctx, tx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	invalidateLeaderboards(ctx, s.cache, game.LeagueID)
	state := hoops.MaterializeState(game)
	return &state, nil
}

// RecordPlayerStat adds value to a single counter. Negative values are
// corrections and the counter never drops below zero.
func (s *ScoresheetService) RecordPlayerStat(ctx context.Context, gameID, playerID uuid.UUID, statType string, value int, quarter int) (*hoops.PlayerStat, error) {
	stat, ok := hoops.ParseStatType(strings.TrimSpace(statType))
	if !ok {
		return nil, invalid("unknown stat type %q", statType)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	game, _, err := s.loadGameAndPlayerTx(ctx, tx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if err := checkQuarter(game, quarter); err != nil {
		return nil, err
	}

	if err := s.stores.Stats.EnsureTx(ctx, tx, gameID, playerID); err != nil {
		return nil, fmt.Errorf("failed to create stat line: %w", err)
	}
	if err := s.stores.Stats.ApplyDeltaTx(ctx, tx, gameID, playerID, stat, value); err != nil {
		return nil, fmt.Errorf("failed to record stat: %w", err)
	}

	event := &hoops.GameEvent{
		GameID:    gameID,
		PlayerID:  playerID,
		Quarter:   quarter,
		Kind:      string(stat),
		Value:     value,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.stores.Stats.InsertEventTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to log event: %w", err)
	}

	line, err := s.stores.Stats.GetStatTx(ctx, tx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload stat line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	invalidateLeaderboards(ctx, s.cache, game.LeagueID)
	return line, nil
}

func (s *ScoresheetService) loadGameAndPlayerTx(ctx context.Context, tx *sqlx.Tx, gameID, playerID uuid.UUID) (*hoops.Game, *hoops.Player, error) {
	game, err := s.stores.Games.GetGameTx(ctx, tx, gameID)
	if err != nil {
		return nil, nil, lookup(err, "game")
	}
	player, err := s.stores.Teams.GetPlayerTx(ctx, tx, playerID)
	if err != nil {
		return nil, nil, lookup(err, "player")
	}
	return game, player, nil
}

func checkQuarter(game *hoops.Game, quarter int) error {
	if quarter < 1 || quarter > game.Quarters() {
		return invalid("quarter must be between 1 and %d", game.Quarters())
	}
	return nil
}

type SaveResult struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}

// SavePlayerStats overwrites each listed player's line with the given
// counters. Players that cannot be resolved to either team are skipped.
func (s *ScoresheetService) SavePlayerStats(ctx context.Context, gameID uuid.UUID, entries []hoops.PlayerStat) (*SaveResult, error) {
	for _, e := range entries {
		for _, c := range e.Counters() {
			if c < 0 {
				return nil, invalid("stat values cannot be negative")
			}
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	game, err := s.stores.Games.GetGameTx(ctx, tx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}

	result := &SaveResult{}
	for i := range entries {
		entry := entries[i]

		player, err := s.stores.Teams.GetPlayerTx(ctx, tx, entry.PlayerID)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && !game.HasTeam(player.TeamID)) {
			slog.Warn("skipping stat line", "game_id", gameID, "player_id", entry.PlayerID)
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load player: %w", err)
		}

		entry.ID = uuid.Nil
		entry.GameID = gameID
		if err := s.stores.Stats.ReplaceSnapshotTx(ctx, tx, &entry); err != nil {
			return nil, fmt.Errorf("failed to save stats: %w", err)
		}
		result.Saved++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	invalidateLeaderboards(ctx, s.cache, game.LeagueID)
	return result, nil
}

func (s *ScoresheetService) CompleteGame(ctx context.Context, gameID uuid.UUID) (*hoops.Game, error) {
	game, err := s.stores.Games.GetGame(ctx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}

	switch game.Status {
	case hoops.GameCancelled:
		return nil, invalid("a cancelled game cannot be completed")
	case hoops.GameCompleted:
		return game, nil
	}

	now := s.clock.Now().UTC()
	if err := s.stores.Games.CompleteGame(ctx, gameID, now); err != nil {
		return nil, fmt.Errorf("failed to complete game: %w", err)
	}
	game.Status = hoops.GameCompleted
	game.CompletedAt = &now

	invalidateLeaderboards(ctx, s.cache, game.LeagueID)
	return game, nil
}

type MatchupInput struct {
	LeagueID    uuid.UUID
	TeamAID     uuid.UUID
	TeamBID     uuid.UUID
	ScheduledAt time.Time
	Venue       string
	Config      GameConfigPatch
	// Only read by UpdateMatchup, empty keeps the current status.
	Status hoops.GameStatus
}

// GameConfigPatch holds the game settings a form supplied. Nil fields keep
// the configured defaults on create and the stored values on update.
type GameConfigPatch struct {
	TotalQuarters      *int
	MinutesPerQuarter  *int
	TimeoutsPerQuarter *int
}

func (p GameConfigPatch) Apply(base hoops.GameConfig) hoops.GameConfig {
	if p.TotalQuarters != nil {
		base.TotalQuarters = *p.TotalQuarters
	}
	if p.MinutesPerQuarter != nil {
		base.MinutesPerQuarter = *p.MinutesPerQuarter
	}
	if p.TimeoutsPerQuarter != nil {
		base.TimeoutsPerQuarter = *p.TimeoutsPerQuarter
	}
	return base
}

func validateGameConfig(c hoops.GameConfig) error {
	if c.TotalQuarters < 1 || c.MinutesPerQuarter < 1 || c.TimeoutsPerQuarter < 0 {
		return invalid("game configuration is out of range")
	}
	return nil
}

func (s *ScoresheetService) CreateMatchup(ctx context.Context, in MatchupInput) (*hoops.Game, error) {
	cfg := in.Config.Apply(s.defaults)
	if err := validateGameConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.validateMatchup(ctx, in.LeagueID, in); err != nil {
		return nil, err
	}

	game := &hoops.Game{
		ID:                 uuid.New(),
		LeagueID:           in.LeagueID,
		TeamAID:            in.TeamAID,
		TeamBID:            in.TeamBID,
		ScheduledAt:        in.ScheduledAt.UTC(),
		Venue:              utils.StringOrNil(in.Venue),
		Status:             hoops.GameScheduled,
		TeamAActivePlayers: hoops.IDList{},
		TeamBActivePlayers: hoops.IDList{},
		TotalQuarters:      utils.Ptr(cfg.TotalQuarters),
		MinutesPerQuarter:  utils.Ptr(cfg.MinutesPerQuarter),
		TimeoutsPerQuarter: utils.Ptr(cfg.TimeoutsPerQuarter),
	}

	if err := s.stores.Games.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create matchup: %w", err)
	}
	return game, nil
}

// UpdateMatchup edits a game's teams, schedule and settings. Completed and
// cancelled games keep their status; completing here stamps the time like CompleteGame.
func (s *ScoresheetService) UpdateMatchup(ctx context.Context, gameID uuid.UUID, in MatchupInput) (*hoops.Game, error) {
	game, err := s.stores.Games.GetGame(ctx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}

	cfg := in.Config.Apply(game.Config())
	if err := validateGameConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.validateMatchup(ctx, game.LeagueID, in); err != nil {
		return nil, err
	}

	switch in.Status {
	case "", game.Status:
	case hoops.GameScheduled, hoops.GameInProgress, hoops.GameCompleted, hoops.GameCancelled:
		if game.Status.Terminal() {
			return nil, invalid("a %s game cannot be moved to %s", game.Status, in.Status)
		}
		game.Status = in.Status
		if in.Status == hoops.GameCompleted {
			now := s.clock.Now().UTC()
			game.CompletedAt = &now
		}
	default:
		return nil, invalid("unknown game status %q", in.Status)
	}

	game.TeamAID = in.TeamAID
	game.TeamBID = in.TeamBID
	game.ScheduledAt = in.ScheduledAt.UTC()
	game.Venue = utils.StringOrNil(in.Venue)
	game.TotalQuarters = utils.Ptr(cfg.TotalQuarters)
	game.MinutesPerQuarter = utils.Ptr(cfg.MinutesPerQuarter)
	game.TimeoutsPerQuarter = utils.Ptr(cfg.TimeoutsPerQuarter)

	if err := s.stores.Games.UpdateMatchup(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update matchup: %w", err)
	}

	invalidateLeaderboards(ctx, s.cache, game.LeagueID)
	return game, nil
}

func (s *ScoresheetService) validateMatchup(ctx context.Context, leagueID uuid.UUID, in MatchupInput) error {
	if in.TeamAID == uuid.Nil || in.TeamBID == uuid.Nil {
		return invalid("both teams are required")
	}
	if in.TeamAID == in.TeamBID {
		return invalid("a team cannot play itself")
	}
	if in.ScheduledAt.IsZero() {
		return invalid("a tip-off time is required")
	}

	if _, err := s.stores.Leagues.GetLeague(ctx, leagueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invalid("league does not exist")
		}
		return fmt.Errorf("failed to load league: %w", err)
	}

	for _, teamID := range []uuid.UUID{in.TeamAID, in.TeamBID} {
		if _, err := s.stores.Teams.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return invalid("team %s does not exist", teamID)
			}
			return fmt.Errorf("failed to load team: %w", err)
		}
		member, err := s.stores.Leagues.TeamInLeague(ctx, leagueID, teamID)
		if err != nil {
			return fmt.Errorf("failed to check league membership: %w", err)
		}
		if !member {
			return invalid("team %s is not part of this league", teamID)
		}
	}
	return nil
}

// GameCard is a game with both team names resolved, for listings.
type GameCard struct {
	hoops.Game
	TeamAName string
	TeamBName string
}

type ScoresheetIndex struct {
	League *hoops.League
	Teams  []hoops.Team
	Games  []GameCard
}

// ListScoresheetGames lists the active league's games. League is nil when no league is active.
func (s *ScoresheetService) ListScoresheetGames(ctx context.Context) (*ScoresheetIndex, error) {
	league, err := s.stores.Leagues.GetActiveLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active league: %w", err)
	}
	if league == nil {
		return &ScoresheetIndex{}, nil
	}

	teams, err := s.stores.Leagues.ListLeagueTeams(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	games, err := s.stores.Games.ListLeagueGames(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	cards, err := gameCards(ctx, s.stores.Teams, games)
	if err != nil {
		return nil, err
	}

	return &ScoresheetIndex{League: league, Teams: teams, Games: cards}, nil
}

// ScoresheetBoard is everything the live scoring page needs for one game.
type ScoresheetBoard struct {
	Game    GameCard
	State   hoops.GameState
	RosterA []hoops.RosterEntry
	RosterB []hoops.RosterEntry
	Lines   map[uuid.UUID]hoops.PlayerStat
	Teams   []hoops.Team
}

func (s *ScoresheetService) GetScoresheet(ctx context.Context, gameID uuid.UUID) (*ScoresheetBoard, error) {
	game, err := s.stores.Games.GetGame(ctx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}

	cards, err := gameCards(ctx, s.stores.Teams, []hoops.Game{*game})
	if err != nil {
		return nil, err
	}

	approved := hoops.PlayerApproved
	rosterA, err := s.stores.Teams.ListRoster(ctx, game.TeamAID, &approved)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	rosterB, err := s.stores.Teams.ListRoster(ctx, game.TeamBID, &approved)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	rows, err := s.stores.Stats.ListBoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	lines := make(map[uuid.UUID]hoops.PlayerStat, len(rows))
	for _, r := range rows {
		lines[r.PlayerID] = r.PlayerStat
	}

	teams, err := s.stores.Leagues.ListLeagueTeams(ctx, game.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	return &ScoresheetBoard{
		Game:    cards[0],
		State:   hoops.MaterializeState(game),
		RosterA: rosterA,
		RosterB: rosterB,
		Lines:   lines,
		Teams:   teams,
	}, nil
}

func gameCards(ctx context.Context, teams *store.TeamStore, games []hoops.Game) ([]GameCard, error) {
	all, err := teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	names := make(map[uuid.UUID]string, len(all))
	for _, t := range all {
		names[t.ID] = t.Name
	}

	cards := make([]GameCard, 0, len(games))
	for _, g := range games {
		cards = append(cards, GameCard{Game: g, TeamAName: names[g.TeamAID], TeamBName: names[g.TeamBID]})
	}
	return cards, nil
}
