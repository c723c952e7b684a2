package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port               string
	DatabasePath       string
	MigrationsPath     string
	RedisURL           string
	LeaderboardTTL     time.Duration
	CORSAllowedOrigins []string
	AdminEmail         string
	SessionLifetime    time.Duration
	LeagueConfigPath   string
	League             LeagueDefaults
	// Location is used to group the schedule into days.
	Location *time.Location
}

// LeagueDefaults are applied to new games and to leagues without their own MVP weights.
type LeagueDefaults struct {
	Game hoops.GameConfig `yaml:"game"`
	MVP  hoops.MVPWeights `yaml:"mvp"`
}

func DefaultLeagueDefaults() LeagueDefaults {
	return LeagueDefaults{
		Game: hoops.DefaultGameConfig(),
		MVP:  hoops.DefaultMVPWeights(),
	}
}

// Load reads the environment. Call godotenv.Load first if a .env file should count.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "courtside.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "migrations"),
		RedisURL:           os.Getenv("REDIS_URL"),
		LeaderboardTTL:     time.Duration(getEnvAsInt("LEADERBOARD_TTL_SECONDS", 60)) * time.Second,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		AdminEmail:         strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		SessionLifetime:    time.Duration(getEnvAsInt("SESSION_LIFETIME_HOURS", 24)) * time.Hour,
		LeagueConfigPath:   getEnv("LEAGUE_CONFIG", "league.yaml"),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	league, err := LoadLeagueDefaults(cfg.LeagueConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.League = league

	return cfg, nil
}

// LoadLeagueDefaults reads a YAML file on top of the built-in defaults. A
// missing file is not an error, keys left out of the file keep their default.
func LoadLeagueDefaults(path string) (LeagueDefaults, error) {
	defaults := DefaultLeagueDefaults()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("failed to read league config: %w", err)
	}

	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return defaults, fmt.Errorf("failed to parse league config: %w", err)
	}

	if err := defaults.Validate(); err != nil {
		return defaults, fmt.Errorf("invalid league config %s: %w", path, err)
	}
	return defaults, nil
}

func (d LeagueDefaults) Validate() error {
	if d.Game.TotalQuarters < 1 {
		return fmt.Errorf("game.total_quarters must be at least 1")
	}
	if d.Game.MinutesPerQuarter < 1 {
		return fmt.Errorf("game.minutes_per_quarter must be at least 1")
	}
	if d.Game.TimeoutsPerQuarter < 0 {
		return fmt.Errorf("game.timeouts_per_quarter must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
