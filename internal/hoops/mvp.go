package hoops

// MVPWeights is a linear scoring formula over stat categories. It is only
// used for display and ranking, the MVP itself is picked by hand.
type MVPWeights struct {
	Points          float64 `yaml:"points"`
	Rebounds        float64 `yaml:"rebounds"`
	Assists         float64 `yaml:"assists"`
	Steals          float64 `yaml:"steals"`
	Blocks          float64 `yaml:"blocks"`
	Efficiency      float64 `yaml:"efficiency"`
	FoulPenalty     float64 `yaml:"foul_penalty"`
	TurnoverPenalty float64 `yaml:"turnover_penalty"`
}

func DefaultMVPWeights() MVPWeights {
	return MVPWeights{
		Points:          1.0,
		Rebounds:        1.2,
		Assists:         1.5,
		Steals:          2.0,
		Blocks:          2.0,
		Efficiency:      0.1,
		FoulPenalty:     0.5,
		TurnoverPenalty: 1.0,
	}
}

// StatLine is the input to the MVP formula: per-game values plus field goal
// percentage on a 0-100 scale.
type StatLine struct {
	Points       float64
	Rebounds     float64
	Assists      float64
	Steals       float64
	Blocks       float64
	Fouls        float64
	Turnovers    float64
	FieldGoalPct float64
}

func (w MVPWeights) Score(l StatLine) float64 {
	score := l.Points*w.Points +
		l.Rebounds*w.Rebounds +
		l.Assists*w.Assists +
		l.Steals*w.Steals +
		l.Blocks*w.Blocks +
		l.FieldGoalPct*w.Efficiency -
		l.Fouls*w.FoulPenalty -
		l.Turnovers*w.TurnoverPenalty
	return Round1(score)
}
