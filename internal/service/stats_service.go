package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/AdamBeresnev/courtside/internal/cache"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/store"
	"github.com/google/uuid"
)

type StatsService struct {
	stores   *store.Stores
	cache    cache.Cache
	defaults hoops.MVPWeights
}

func NewStatsService(stores *store.Stores, c cache.Cache, defaults hoops.MVPWeights) *StatsService {
	return &StatsService{stores: stores, cache: c, defaults: defaults}
}

// PlayerSeasonLine is a player's per-game averages over one league.
type PlayerSeasonLine struct {
	PlayerID    uuid.UUID `json:"player_id"`
	TeamID      uuid.UUID `json:"team_id"`
	Username    string    `json:"username"`
	TeamName    string    `json:"team_name"`
	GamesPlayed int       `json:"games_played"`

	Points    float64 `json:"points"`
	Rebounds  float64 `json:"rebounds"`
	Assists   float64 `json:"assists"`
	Steals    float64 `json:"steals"`
	Blocks    float64 `json:"blocks"`
	Fouls     float64 `json:"fouls"`
	Turnovers float64 `json:"turnovers"`

	FieldGoalPct  float64 `json:"field_goal_pct"`
	ThreePointPct float64 `json:"three_point_pct"`
	FreeThrowPct  float64 `json:"free_throw_pct"`
	MVPScore      float64 `json:"mvp_score"`

	TotalPoints   int `json:"total_points"`
	TotalRebounds int `json:"total_rebounds"`
	TotalAssists  int `json:"total_assists"`
}

// SeasonLine averages t over its games. Averages are rounded to one decimal
// before they feed the MVP formula.
func SeasonLine(t hoops.SeasonTotals, w hoops.MVPWeights) PlayerSeasonLine {
	avg := func(total int) float64 {
		if t.GamesPlayed == 0 {
			return 0
		}
		return hoops.Round1(float64(total) / float64(t.GamesPlayed))
	}

	line := PlayerSeasonLine{
		PlayerID:      t.PlayerID,
		TeamID:        t.TeamID,
		Username:      t.Username,
		TeamName:      t.TeamName,
		GamesPlayed:   t.GamesPlayed,
		Points:        avg(t.Points),
		Rebounds:      avg(t.Rebounds),
		Assists:       avg(t.Assists),
		Steals:        avg(t.Steals),
		Blocks:        avg(t.Blocks),
		Fouls:         avg(t.Fouls),
		Turnovers:     avg(t.Turnovers),
		FieldGoalPct:  hoops.Percentage(t.FieldGoalsMade, t.FieldGoalsAttempted),
		ThreePointPct: hoops.Percentage(t.ThreePointersMade, t.ThreePointersAttempted),
		FreeThrowPct:  hoops.Percentage(t.FreeThrowsMade, t.FreeThrowsAttempted),
		TotalPoints:   t.Points,
		TotalRebounds: t.Rebounds,
		TotalAssists:  t.Assists,
	}

	line.MVPScore = w.Score(hoops.StatLine{
		Points:       line.Points,
		Rebounds:     line.Rebounds,
		Assists:      line.Assists,
		Steals:       line.Steals,
		Blocks:       line.Blocks,
		Fouls:        line.Fouls,
		Turnovers:    line.Turnovers,
		FieldGoalPct: line.FieldGoalPct,
	})
	return line
}

// LeaderboardSorts are the columns a leaderboard may be ordered by. The first is the default.
var LeaderboardSorts = []string{"points", "rebounds", "assists", "steals", "blocks", "fg_pct", "mvp"}

func sortKey(sortBy string) func(PlayerSeasonLine) float64 {
	switch sortBy {
	case "rebounds":
		return func(l PlayerSeasonLine) float64 { return l.Rebounds }
	case "assists":
		return func(l PlayerSeasonLine) float64 { return l.Assists }
	case "steals":
		return func(l PlayerSeasonLine) float64 { return l.Steals }
	case "blocks":
		return func(l PlayerSeasonLine) float64 { return l.Blocks }
	case "fg_pct":
		return func(l PlayerSeasonLine) float64 { return l.FieldGoalPct }
	case "mvp":
		return func(l PlayerSeasonLine) float64 { return l.MVPScore }
	}
	return nil
}

func normalizeSort(sortBy string) string {
	if sortKey(sortBy) == nil {
		return LeaderboardSorts[0]
	}
	return sortBy
}

func sortLines(lines []PlayerSeasonLine, sortBy string) {
	key := sortKey(sortBy)
	if key == nil {
		key = func(l PlayerSeasonLine) float64 { return l.Points }
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := key(lines[i]), key(lines[j])
		if a != b {
			return a > b
		}
		return lines[i].Username < lines[j].Username
	})
}

func leaderboardKey(leagueID uuid.UUID, sortBy string) string {
	return fmt.Sprintf("leaderboard:%s:%s", leagueID, sortBy)
}

// invalidateLeaderboards drops every cached sort of the given leagues.
func invalidateLeaderboards(ctx context.Context, c cache.Cache, leagueIDs ...uuid.UUID) {
	if c == nil || len(leagueIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(leagueIDs)*len(LeaderboardSorts))
	for _, leagueID := range leagueIDs {
		for _, sortBy := range LeaderboardSorts {
			keys = append(keys, leaderboardKey(leagueID, sortBy))
		}
	}
	if err := c.Delete(ctx, keys...); err != nil {
		slog.Warn("failed to invalidate leaderboard cache", "leagues", leagueIDs, "error", err)
	}
}

type Leaderboard struct {
	League *hoops.League
	SortBy string
	Lines  []PlayerSeasonLine
}

// Leaderboard ranks every player of the active league. Results are cached
// per league and sort until the next stat write.
func (s *StatsService) Leaderboard(ctx context.Context, sortBy string) (*Leaderboard, error) {
	sortBy = normalizeSort(sortBy)

	league, err := s.stores.Leagues.GetActiveLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active league: %w", err)
	}
	if league == nil {
		return &Leaderboard{SortBy: sortBy}, nil
	}

	key := leaderboardKey(league.ID, sortBy)
	if s.cache != nil {
		if b, ok, err := s.cache.Get(ctx, key); err != nil {
			slog.Warn("leaderboard cache read failed", "key", key, "error", err)
		} else if ok {
			var lines []PlayerSeasonLine
			if err := json.Unmarshal(b, &lines); err == nil {
				return &Leaderboard{League: league, SortBy: sortBy, Lines: lines}, nil
			}
		}
	}

	lines, err := s.seasonLines(ctx, league, nil)
	if err != nil {
		return nil, err
	}
	sortLines(lines, sortBy)

	if s.cache != nil {
		if b, err := json.Marshal(lines); err == nil {
			if err := s.cache.Set(ctx, key, b); err != nil {
				slog.Warn("leaderboard cache write failed", "key", key, "error", err)
			}
		}
	}

	return &Leaderboard{League: league, SortBy: sortBy, Lines: lines}, nil
}

func (s *StatsService) seasonLines(ctx context.Context, league *hoops.League, playerID *uuid.UUID) ([]PlayerSeasonLine, error) {
	totals, err := s.stores.Stats.SeasonTotals(ctx, league.ID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season totals: %w", err)
	}

	weights := league.Weights(s.defaults)
	lines := make([]PlayerSeasonLine, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, SeasonLine(t, weights))
	}
	return lines, nil
}

// PlayerSeason returns one player's line in the active league, nil when
// there is no active league or the player has no games in it.
func (s *StatsService) PlayerSeason(ctx context.Context, playerID uuid.UUID) (*PlayerSeasonLine, error) {
	league, err := s.stores.Leagues.GetActiveLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active league: %w", err)
	}
	if league == nil {
		return nil, nil
	}

	lines, err := s.seasonLines(ctx, league, &playerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return &lines[0], nil
}

type StandingRow struct {
	TeamID        uuid.UUID
	TeamName      string
	Played        int
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
}

func (r StandingRow) PointDiff() int {
	return r.PointsFor - r.PointsAgainst
}

// WinPct counts a tie as half a win, on a 0-100 scale.
func (r StandingRow) WinPct() float64 {
	if r.Played == 0 {
		return 0
	}
	return hoops.Round1((float64(r.Wins) + float64(r.Ties)/2) / float64(r.Played) * 100)
}

// BuildStandings tallies completed games for the given teams. Games against
// teams outside the list still count for the listed side.
func BuildStandings(teams []hoops.Team, games []hoops.Game) []StandingRow {
	rows := make(map[uuid.UUID]*StandingRow, len(teams))
	for _, t := range teams {
		rows[t.ID] = &StandingRow{TeamID: t.ID, TeamName: t.Name}
	}

	tally := func(teamID uuid.UUID, scored, conceded int) {
		row, ok := rows[teamID]
		if !ok {
			return
		}
		row.Played++
		row.PointsFor += scored
		row.PointsAgainst += conceded
		switch {
		case scored > conceded:
			row.Wins++
		case scored < conceded:
			row.Losses++
		default:
			row.Ties++
		}
	}

	for _, g := range games {
		if g.Status != hoops.GameCompleted {
			continue
		}
		tally(g.TeamAID, g.TeamAScore, g.TeamBScore)
		tally(g.TeamBID, g.TeamBScore, g.TeamAScore)
	}

	out := make([]StandingRow, 0, len(rows))
	for _, t := range teams {
		out = append(out, *rows[t.ID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].PointDiff() != out[j].PointDiff() {
			return out[i].PointDiff() > out[j].PointDiff()
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out
}

type Standings struct {
	League *hoops.League
	Rows   []StandingRow
}

func (s *StatsService) Standings(ctx context.Context) (*Standings, error) {
	league, err := s.stores.Leagues.GetActiveLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active league: %w", err)
	}
	if league == nil {
		return &Standings{}, nil
	}

	teams, err := s.stores.Leagues.ListLeagueTeams(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	games, err := s.stores.Games.ListLeagueGames(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	return &Standings{League: league, Rows: BuildStandings(teams, games)}, nil
}

type ScheduleDay struct {
	Date  time.Time
	Games []GameCard
}

// GroupByDay buckets games by calendar day in loc, days and games in tip-off order.
func GroupByDay(games []GameCard, loc *time.Location) []ScheduleDay {
	byDay := make(map[time.Time][]GameCard)
	var days []time.Time

	for _, g := range games {
		t := g.ScheduledAt.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if _, exists := byDay[day]; !exists {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], g)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]ScheduleDay, 0, len(days))
	for _, d := range days {
		dayGames := byDay[d]
		sort.SliceStable(dayGames, func(i, j int) bool {
			return dayGames[i].ScheduledAt.Before(dayGames[j].ScheduledAt)
		})
		out = append(out, ScheduleDay{Date: d, Games: dayGames})
	}
	return out
}

type Schedule struct {
	League *hoops.League
	Days   []ScheduleDay
}

func (s *StatsService) Schedule(ctx context.Context, loc *time.Location) (*Schedule, error) {
	league, err := s.stores.Leagues.GetActiveLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active league: %w", err)
	}
	if league == nil {
		return &Schedule{}, nil
	}

	games, err := s.stores.Games.ListLeagueGames(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	cards, err := gameCards(ctx, s.stores.Teams, games)
	if err != nil {
		return nil, err
	}

	return &Schedule{League: league, Days: GroupByDay(cards, loc)}, nil
}

type TeamDetail struct {
	Team   *hoops.Team
	Coach  string
	Roster []hoops.RosterEntry
	Lines  []PlayerSeasonLine
	Games  []GameCard
	Record *StandingRow
}

func (s *StatsService) TeamDetail(ctx context.Context, teamID uuid.UUID) (*TeamDetail, error) {
	team, err := s.stores.Teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, lookup(err, "team")
	}

	detail := &TeamDetail{Team: team}

	if coach, err := s.stores.Users.GetUser(ctx, team.CoachID); err == nil {
		detail.Coach = coach.Username
	}

	approved := hoops.PlayerApproved
	detail.Roster, err = s.stores.Teams.ListRoster(ctx, teamID, &approved)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	league, err := s.stores.Leagues.GetActiveLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active league: %w", err)
	}
	if league == nil {
		return detail, nil
	}

	games, err := s.stores.Games.ListTeamGames(ctx, league.ID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	detail.Games, err = gameCards(ctx, s.stores.Teams, games)
	if err != nil {
		return nil, err
	}

	rows := BuildStandings([]hoops.Team{*team}, games)
	detail.Record = &rows[0]

	lines, err := s.seasonLines(ctx, league, nil)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if l.TeamID == teamID {
			detail.Lines = append(detail.Lines, l)
		}
	}
	sortLines(detail.Lines, "points")

	return detail, nil
}

// BoxLine is one player's single-game line with derived columns.
type BoxLine struct {
	hoops.BoxScoreRow
	FieldGoalPct  float64
	ThreePointPct float64
	FreeThrowPct  float64
	MVPScore      float64
}

type GameDetail struct {
	Game   GameCard
	BoxA   []BoxLine
	BoxB   []BoxLine
	Events []hoops.GameEventView
	Winner *uuid.UUID
}

func (s *StatsService) GameDetail(ctx context.Context, gameID uuid.UUID) (*GameDetail, error) {
	game, err := s.stores.Games.GetGame(ctx, gameID)
	if err != nil {
		return nil, lookup(err, "game")
	}

	league, err := s.stores.Leagues.GetLeague(ctx, game.LeagueID)
	if err != nil {
		return nil, lookup(err, "league")
	}
	weights := league.Weights(s.defaults)

	cards, err := gameCards(ctx, s.stores.Teams, []hoops.Game{*game})
	if err != nil {
		return nil, err
	}

	rows, err := s.stores.Stats.ListBoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load box score: %w", err)
	}

	detail := &GameDetail{Game: cards[0], Winner: game.Winner()}
	for _, r := range rows {
		line := BoxLine{
			BoxScoreRow:   r,
			FieldGoalPct:  hoops.Percentage(r.FieldGoalsMade, r.FieldGoalsAttempted),
			ThreePointPct: hoops.Percentage(r.ThreePointersMade, r.ThreePointersAttempted),
			FreeThrowPct:  hoops.Percentage(r.FreeThrowsMade, r.FreeThrowsAttempted),
			MVPScore:      weights.Score(r.Line()),
		}
		if game.SideOf(r.TeamID) == hoops.SideA {
			detail.BoxA = append(detail.BoxA, line)
		} else {
			detail.BoxB = append(detail.BoxB, line)
		}
	}

	detail.Events, err = s.stores.Stats.ListEvents(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load play-by-play: %w", err)
	}

	return detail, nil
}
