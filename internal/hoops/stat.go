package hoops

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// StatType names a single counter on a PlayerStat row. The value doubles as
// the column name, so only members of StatTypes may reach SQL.
type StatType string

const (
	StatPoints                 StatType = "points"
	StatRebounds               StatType = "rebounds"
	StatAssists                StatType = "assists"
	StatSteals                 StatType = "steals"
	StatBlocks                 StatType = "blocks"
	StatFouls                  StatType = "fouls"
	StatTurnovers              StatType = "turnovers"
	StatFieldGoalsMade         StatType = "field_goals_made"
	StatFieldGoalsAttempted    StatType = "field_goals_attempted"
	StatThreePointersMade      StatType = "three_pointers_made"
	StatThreePointersAttempted StatType = "three_pointers_attempted"
	StatFreeThrowsMade         StatType = "free_throws_made"
	StatFreeThrowsAttempted    StatType = "free_throws_attempted"
)

var StatTypes = []StatType{
	StatPoints,
	StatRebounds,
	StatAssists,
	StatSteals,
	StatBlocks,
	StatFouls,
	StatTurnovers,
	StatFieldGoalsMade,
	StatFieldGoalsAttempted,
	StatThreePointersMade,
	StatThreePointersAttempted,
	StatFreeThrowsMade,
	StatFreeThrowsAttempted,
}

func ParseStatType(s string) (StatType, bool) {
	for _, st := range StatTypes {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// PlayerStat is the cumulative line for one player in one game.
type PlayerStat struct {
	ID       uuid.UUID `db:"id" json:"-"`
	GameID   uuid.UUID `db:"game_id" json:"game_id"`
	PlayerID uuid.UUID `db:"player_id" json:"player_id"`

	Points                 int `db:"points" json:"points"`
	Rebounds               int `db:"rebounds" json:"rebounds"`
	Assists                int `db:"assists" json:"assists"`
	Steals                 int `db:"steals" json:"steals"`
	Blocks                 int `db:"blocks" json:"blocks"`
	Fouls                  int `db:"fouls" json:"fouls"`
	Turnovers              int `db:"turnovers" json:"turnovers"`
	FieldGoalsMade         int `db:"field_goals_made" json:"field_goals_made"`
	FieldGoalsAttempted    int `db:"field_goals_attempted" json:"field_goals_attempted"`
	ThreePointersMade      int `db:"three_pointers_made" json:"three_pointers_made"`
	ThreePointersAttempted int `db:"three_pointers_attempted" json:"three_pointers_attempted"`
	FreeThrowsMade         int `db:"free_throws_made" json:"free_throws_made"`
	FreeThrowsAttempted    int `db:"free_throws_attempted" json:"free_throws_attempted"`
	MinutesPlayed          int `db:"minutes_played" json:"minutes_played"`

	CreatedAt time.Time `db:"created_at" json:"-"`
}

// Counters returns the fourteen counters in a fixed order, for validation.
func (s *PlayerStat) Counters() []int {
	return []int{
		s.Points, s.Rebounds, s.Assists, s.Steals, s.Blocks, s.Fouls, s.Turnovers,
		s.FieldGoalsMade, s.FieldGoalsAttempted,
		s.ThreePointersMade, s.ThreePointersAttempted,
		s.FreeThrowsMade, s.FreeThrowsAttempted,
		s.MinutesPlayed,
	}
}

// Line converts a single game into MVP formula input.
func (s *PlayerStat) Line() StatLine {
	return StatLine{
		Points:       float64(s.Points),
		Rebounds:     float64(s.Rebounds),
		Assists:      float64(s.Assists),
		Steals:       float64(s.Steals),
		Blocks:       float64(s.Blocks),
		Fouls:        float64(s.Fouls),
		Turnovers:    float64(s.Turnovers),
		FieldGoalPct: Percentage(s.FieldGoalsMade, s.FieldGoalsAttempted),
	}
}

// FieldGoalDelta is the counter change caused by one shot.
type FieldGoalDelta struct {
	Points                 int
	FieldGoalsMade         int
	FieldGoalsAttempted    int
	ThreePointersMade      int
	ThreePointersAttempted int
	FreeThrowsMade         int
	FreeThrowsAttempted    int
}

// ShotDelta applies make/attempt accounting for a 1, 2 or 3 point shot.
func ShotDelta(points int, made bool) (FieldGoalDelta, bool) {
	var d FieldGoalDelta
	switch points {
	case 1:
		d.FreeThrowsAttempted = 1
		if made {
			d.FreeThrowsMade = 1
		}
	case 2:
		d.FieldGoalsAttempted = 1
		if made {
			d.FieldGoalsMade = 1
		}
	case 3:
		d.FieldGoalsAttempted = 1
		d.ThreePointersAttempted = 1
		if made {
			d.FieldGoalsMade = 1
			d.ThreePointersMade = 1
		}
	default:
		return d, false
	}
	if made {
		d.Points = points
	}
	return d, true
}

// Percentage is made/attempted*100 rounded to one decimal, 0 when nothing was attempted.
func Percentage(made, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return Round1(float64(made) / float64(attempted) * 100)
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
