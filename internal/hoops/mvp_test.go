package hoops

import (
	"testing"

	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestMVPScore(t *testing.T) {
	w := DefaultMVPWeights()

	line := StatLine{
		Points:       20,
		Rebounds:     10,
		Assists:      5,
		Steals:       2,
		Blocks:       1,
		Fouls:        3,
		Turnovers:    4,
		FieldGoalPct: 50,
	}
	// 20 + 12 + 7.5 + 4 + 2 + 5 - 1.5 - 4
	assert.Equal(t, 45.0, w.Score(line))

	assert.Equal(t, 0.0, w.Score(StatLine{}))
}

func TestMVPScore_PenaltiesCanGoNegative(t *testing.T) {
	w := MVPWeights{FoulPenalty: 1, TurnoverPenalty: 2}
	assert.Equal(t, -7.0, w.Score(StatLine{Fouls: 3, Turnovers: 2}))
}

func TestLeagueWeights(t *testing.T) {
	defaults := DefaultMVPWeights()

	l := League{}
	assert.Equal(t, defaults, l.Weights(defaults))

	l.MVPPointsWeight = utils.Ptr(2.0)
	l.MVPTurnoverPenalty = utils.Ptr(0.0)
	got := l.Weights(defaults)
	assert.Equal(t, 2.0, got.Points)
	assert.Equal(t, 0.0, got.TurnoverPenalty)
	assert.Equal(t, defaults.Rebounds, got.Rebounds)

	custom := MVPWeights{Points: 3, Rebounds: 1, Assists: 1, Steals: 1, Blocks: 1, Efficiency: 0, FoulPenalty: 1, TurnoverPenalty: 1}
	l.SetWeights(custom)
	assert.Equal(t, custom, l.Weights(defaults))
}
