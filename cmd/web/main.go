package main

import (
	"log"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/courtside/internal/cache"
	"github.com/AdamBeresnev/courtside/internal/config"
	"github.com/AdamBeresnev/courtside/internal/db"
	"github.com/AdamBeresnev/courtside/internal/middleware"
	"github.com/AdamBeresnev/courtside/internal/service"
	"github.com/AdamBeresnev/courtside/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

// application holds the services every handler shares.
type application struct {
	cfg        *config.Config
	db         *sqlx.DB
	sessions   *scs.SessionManager
	cache      cache.Cache
	userStore  *store.UserStore
	users      *service.UserService
	roster     *service.RosterService
	seasons    *service.SeasonService
	scoresheet *service.ScoresheetService
	stats      *service.StatsService
}

func newApplication(cfg *config.Config, database *sqlx.DB, sessions *scs.SessionManager, c cache.Cache, clock clockwork.Clock) *application {
	stores := store.New(database)
	return &application{
		cfg:        cfg,
		db:         database,
		sessions:   sessions,
		cache:      c,
		userStore:  stores.Users,
		users:      service.NewUserService(database, stores.Users, cfg.AdminEmail),
		roster:     service.NewRosterService(database, stores, c),
		seasons:    service.NewSeasonService(database, stores, c, cfg.League.MVP),
		scoresheet: service.NewScoresheetService(database, stores, c, clock, cfg.League.Game),
		stats:      service.NewStatsService(stores, c, cfg.League.MVP),
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database := db.InitDB(cfg.DatabasePath)
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	middleware.InitAuth()

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	var leaderboardCache cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(cfg.RedisURL, cfg.LeaderboardTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer rc.Close()
		leaderboardCache = rc
		slog.Info("leaderboard cache", "backend", "redis")
	} else {
		leaderboardCache = cache.NewMemoryCache(clockwork.NewRealClock(), cfg.LeaderboardTTL)
		slog.Info("leaderboard cache", "backend", "memory")
	}

	app := newApplication(cfg, database, sessionManager, leaderboardCache, clockwork.NewRealClock())
	router := app.routes()

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
