package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "league.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadLeagueDefaults_MissingFile(t *testing.T) {
	d, err := LoadLeagueDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLeagueDefaults(), d)

	d, err = LoadLeagueDefaults("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLeagueDefaults(), d)
}

func TestLoadLeagueDefaults_PartialOverride(t *testing.T) {
	path := writeFile(t, `
game:
  minutes_per_quarter: 10
mvp:
  points: 2.5
  turnover_penalty: 0
`)

	d, err := LoadLeagueDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, 10, d.Game.MinutesPerQuarter)
	assert.Equal(t, hoops.DefaultQuarters, d.Game.TotalQuarters)
	assert.Equal(t, hoops.DefaultTimeoutsPerQuarter, d.Game.TimeoutsPerQuarter)
	assert.Equal(t, 2.5, d.MVP.Points)
	assert.Equal(t, 0.0, d.MVP.TurnoverPenalty)
	assert.Equal(t, hoops.DefaultMVPWeights().Rebounds, d.MVP.Rebounds)
}

func TestLoadLeagueDefaults_Invalid(t *testing.T) {
	_, err := LoadLeagueDefaults(writeFile(t, "game:\n  total_quarters: 0\n"))
	assert.Error(t, err)

	_, err = LoadLeagueDefaults(writeFile(t, "game: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("ADMIN_EMAIL", "  Admin@Example.com ")
	t.Setenv("LEADERBOARD_TTL_SECONDS", "not-a-number")
	t.Setenv("LEAGUE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, 60*time.Second, cfg.LeaderboardTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, DefaultLeagueDefaults(), cfg.League)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	t.Setenv("LEAGUE_CONFIG", "")

	_, err := Load()
	assert.Error(t, err)
}
