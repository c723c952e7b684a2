package hoops

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
)

const (
	DefaultQuarters           = 4
	DefaultMinutesPerQuarter  = 12
	DefaultTimeoutsPerQuarter = 2

	// Used when a game has no stored clock, regardless of its quarter length.
	DefaultTimeRemaining = 720
	// Used when either timeout setting is missing.
	FallbackTimeouts = 6
)

type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameCompleted  GameStatus = "completed"
	GameCancelled  GameStatus = "cancelled"
)

func (s GameStatus) Terminal() bool {
	return s == GameCompleted || s == GameCancelled
}

type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// IDList is stored as a JSON array in a TEXT column.
type IDList []uuid.UUID

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uuid.UUID(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IDList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into IDList", src)
	}
	if len(data) == 0 {
		*l = IDList{}
		return nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*l = ids
	return nil
}

type Game struct {
	ID          uuid.UUID  `db:"id"`
	LeagueID    uuid.UUID  `db:"league_id"`
	TeamAID     uuid.UUID  `db:"team_a_id"`
	TeamBID     uuid.UUID  `db:"team_b_id"`
	ScheduledAt time.Time  `db:"scheduled_at"`
	Venue       *string    `db:"venue"`
	Status      GameStatus `db:"status"`

	// Live state, nil until first written
	CurrentQuarter *int `db:"current_quarter"`
	TimeRemaining  *int `db:"time_remaining"`
	TeamAScore     int  `db:"team_a_score"`
	TeamBScore     int  `db:"team_b_score"`
	TeamAFouls     *int `db:"team_a_fouls"`
	TeamBFouls     *int `db:"team_b_fouls"`
	TeamATimeouts  *int `db:"team_a_timeouts"`
	TeamBTimeouts  *int `db:"team_b_timeouts"`

	TeamAActivePlayers IDList `db:"team_a_active_players"`
	TeamBActivePlayers IDList `db:"team_b_active_players"`

	TotalQuarters      *int `db:"total_quarters"`
	MinutesPerQuarter  *int `db:"minutes_per_quarter"`
	TimeoutsPerQuarter *int `db:"timeouts_per_quarter"`

	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (g *Game) IsRunning() bool {
	return g.Status == GameInProgress
}

func (g *Game) Quarters() int {
	return utils.Or(g.TotalQuarters, DefaultQuarters)
}

// StartingTimeouts is the per-team allowance for the whole game.
func (g *Game) StartingTimeouts() int {
	if g.TimeoutsPerQuarter == nil || g.TotalQuarters == nil {
		return FallbackTimeouts
	}
	return *g.TimeoutsPerQuarter * *g.TotalQuarters
}

// MaxTimeouts bounds what a scorer may set a team's timeout count to. The cap is
// 6 unless the game starts with more, as the default 4 quarters x 2 does.
func (g *Game) MaxTimeouts() int {
	return max(FallbackTimeouts, g.StartingTimeouts())
}

// Config is the stored game settings with defaults for anything unset.
func (g *Game) Config() GameConfig {
	return GameConfig{
		TotalQuarters:      utils.Or(g.TotalQuarters, DefaultQuarters),
		MinutesPerQuarter:  utils.Or(g.MinutesPerQuarter, DefaultMinutesPerQuarter),
		TimeoutsPerQuarter: utils.Or(g.TimeoutsPerQuarter, DefaultTimeoutsPerQuarter),
	}
}

// SideOf reports which side a team plays on. Anything that is not team A is B.
func (g *Game) SideOf(teamID uuid.UUID) Side {
	if teamID == g.TeamAID {
		return SideA
	}
	return SideB
}

func (g *Game) HasTeam(teamID uuid.UUID) bool {
	return teamID == g.TeamAID || teamID == g.TeamBID
}

// Winner returns the winning team of a completed game, nil on a tie or while unfinished.
func (g *Game) Winner() *uuid.UUID {
	if g.Status != GameCompleted || g.TeamAScore == g.TeamBScore {
		return nil
	}
	if g.TeamAScore > g.TeamBScore {
		return &g.TeamAID
	}
	return &g.TeamBID
}

type GameConfig struct {
	TotalQuarters      int `json:"total_quarters" yaml:"total_quarters"`
	MinutesPerQuarter  int `json:"minutes_per_quarter" yaml:"minutes_per_quarter"`
	TimeoutsPerQuarter int `json:"timeouts_per_quarter" yaml:"timeouts_per_quarter"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		TotalQuarters:      DefaultQuarters,
		MinutesPerQuarter:  DefaultMinutesPerQuarter,
		TimeoutsPerQuarter: DefaultTimeoutsPerQuarter,
	}
}

// GameState is the live board as served to scorekeepers.
type GameState struct {
	GameID        uuid.UUID  `json:"game_id"`
	Status        GameStatus `json:"status"`
	Quarter       int        `json:"quarter"`
	TimeRemaining int        `json:"time_remaining"`
	IsRunning     bool       `json:"is_running"`

	TeamAID            uuid.UUID   `json:"team_a_id"`
	TeamBID            uuid.UUID   `json:"team_b_id"`
	TeamAScore         int         `json:"team_a_score"`
	TeamBScore         int         `json:"team_b_score"`
	TeamAFouls         int         `json:"team_a_fouls"`
	TeamBFouls         int         `json:"team_b_fouls"`
	TeamATimeouts      int         `json:"team_a_timeouts"`
	TeamBTimeouts      int         `json:"team_b_timeouts"`
	TeamAActivePlayers []uuid.UUID `json:"team_a_active_players"`
	TeamBActivePlayers []uuid.UUID `json:"team_b_active_players"`

	Config GameConfig `json:"config"`
}

// MaterializeState fills every unset live field with its default.
func MaterializeState(g *Game) GameState {
	timeouts := g.StartingTimeouts()

	active := func(l IDList) []uuid.UUID {
		if l == nil {
			return []uuid.UUID{}
		}
		return l
	}

	return GameState{
		GameID:             g.ID,
		Status:             g.Status,
		Quarter:            utils.Or(g.CurrentQuarter, 1),
		TimeRemaining:      utils.Or(g.TimeRemaining, DefaultTimeRemaining),
		IsRunning:          g.IsRunning(),
		TeamAID:            g.TeamAID,
		TeamBID:            g.TeamBID,
		TeamAScore:         g.TeamAScore,
		TeamBScore:         g.TeamBScore,
		TeamAFouls:         utils.Or(g.TeamAFouls, 0),
		TeamBFouls:         utils.Or(g.TeamBFouls, 0),
		TeamATimeouts:      utils.Or(g.TeamATimeouts, timeouts),
		TeamBTimeouts:      utils.Or(g.TeamBTimeouts, timeouts),
		TeamAActivePlayers: active(g.TeamAActivePlayers),
		TeamBActivePlayers: active(g.TeamBActivePlayers),
		Config:             g.Config(),
	}
}
