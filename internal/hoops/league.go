package hoops

import (
	"time"

	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/google/uuid"
)

type LeagueStatus string

const (
	LeagueUpcoming  LeagueStatus = "upcoming"
	LeagueActive    LeagueStatus = "active"
	LeagueCompleted LeagueStatus = "completed"
	LeagueCancelled LeagueStatus = "cancelled"
)

func (s LeagueStatus) Valid() bool {
	switch s {
	case LeagueUpcoming, LeagueActive, LeagueCompleted, LeagueCancelled:
		return true
	}
	return false
}

type League struct {
	ID        uuid.UUID    `db:"id"`
	Name      string       `db:"name"`
	Year      int          `db:"year"`
	StartDate *time.Time   `db:"start_date"`
	EndDate   *time.Time   `db:"end_date"`
	Status    LeagueStatus `db:"status"`
	IsActive  bool         `db:"is_active"`

	// Optional MVP weights, nil means "use the configured default"
	MVPPointsWeight     *float64 `db:"mvp_points_weight"`
	MVPReboundsWeight   *float64 `db:"mvp_rebounds_weight"`
	MVPAssistsWeight    *float64 `db:"mvp_assists_weight"`
	MVPStealsWeight     *float64 `db:"mvp_steals_weight"`
	MVPBlocksWeight     *float64 `db:"mvp_blocks_weight"`
	MVPEfficiencyWeight *float64 `db:"mvp_efficiency_weight"`
	MVPFoulPenalty      *float64 `db:"mvp_foul_penalty"`
	MVPTurnoverPenalty  *float64 `db:"mvp_turnover_penalty"`

	CreatedAt time.Time `db:"created_at"`
}

// Weights resolves the league's MVP formula, falling back to defaults per field.
func (l *League) Weights(defaults MVPWeights) MVPWeights {
	return MVPWeights{
		Points:          utils.Or(l.MVPPointsWeight, defaults.Points),
		Rebounds:        utils.Or(l.MVPReboundsWeight, defaults.Rebounds),
		Assists:         utils.Or(l.MVPAssistsWeight, defaults.Assists),
		Steals:          utils.Or(l.MVPStealsWeight, defaults.Steals),
		Blocks:          utils.Or(l.MVPBlocksWeight, defaults.Blocks),
		Efficiency:      utils.Or(l.MVPEfficiencyWeight, defaults.Efficiency),
		FoulPenalty:     utils.Or(l.MVPFoulPenalty, defaults.FoulPenalty),
		TurnoverPenalty: utils.Or(l.MVPTurnoverPenalty, defaults.TurnoverPenalty),
	}
}

// SetWeights stores every weight explicitly on the league.
func (l *League) SetWeights(w MVPWeights) {
	l.MVPPointsWeight = utils.Ptr(w.Points)
	l.MVPReboundsWeight = utils.Ptr(w.Rebounds)
	l.MVPAssistsWeight = utils.Ptr(w.Assists)
	l.MVPStealsWeight = utils.Ptr(w.Steals)
	l.MVPBlocksWeight = utils.Ptr(w.Blocks)
	l.MVPEfficiencyWeight = utils.Ptr(w.Efficiency)
	l.MVPFoulPenalty = utils.Ptr(w.FoulPenalty)
	l.MVPTurnoverPenalty = utils.Ptr(w.TurnoverPenalty)
}
