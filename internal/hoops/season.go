package hoops

import "github.com/google/uuid"

// SeasonTotals sums a player's PlayerStat rows across a league.
type SeasonTotals struct {
	PlayerID    uuid.UUID `db:"player_id"`
	TeamID      uuid.UUID `db:"team_id"`
	Username    string    `db:"username"`
	TeamName    string    `db:"team_name"`
	GamesPlayed int       `db:"games_played"`

	Points                 int `db:"points"`
	Rebounds               int `db:"rebounds"`
	Assists                int `db:"assists"`
	Steals                 int `db:"steals"`
	Blocks                 int `db:"blocks"`
	Fouls                  int `db:"fouls"`
	Turnovers              int `db:"turnovers"`
	FieldGoalsMade         int `db:"field_goals_made"`
	FieldGoalsAttempted    int `db:"field_goals_attempted"`
	ThreePointersMade      int `db:"three_pointers_made"`
	ThreePointersAttempted int `db:"three_pointers_attempted"`
	FreeThrowsMade         int `db:"free_throws_made"`
	FreeThrowsAttempted    int `db:"free_throws_attempted"`
}

// BoxScoreRow is one player's line in a single game.
type BoxScoreRow struct {
	PlayerStat
	TeamID       uuid.UUID `db:"team_id"`
	Username     string    `db:"username"`
	JerseyNumber *int      `db:"jersey_number"`
}
