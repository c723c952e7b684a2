package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/AdamBeresnev/courtside/internal/access"
	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/AdamBeresnev/courtside/internal/middleware"
	"github.com/AdamBeresnev/courtside/views"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	// Lets a scoreboard served from another origin call the JSON endpoints.
	if len(app.cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   app.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
			AllowCredentials: true,
		}).Handler)
	}
	r.Use(app.sessions.LoadAndSave)
	r.Use(middleware.LoadAuthenticatedUser(app.sessions, app.userStore))

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/healthz", app.healthz)

	// Public pages
	r.Get("/", app.schedulePage)
	r.Get("/leaderboard", app.leaderboardPage)
	r.Get("/standings", app.standingsPage)
	r.Get("/teams/{team}", app.teamPage)
	r.Get("/games/{game}", app.gamePage)
	r.Get("/players/{player}/season", app.playerSeason)

	r.Get("/login", app.loginPage)
	r.Get("/auth/{provider}", app.beginAuth)
	r.Get("/auth/{provider}/callback", app.authCallback)
	r.Post("/auth/guest", app.guestLogin)
	r.Post("/logout", app.logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/teams", app.teamsPage)
		r.With(app.can(access.CreateTeam)).Post("/teams/create", app.createTeam)
		r.With(app.can(access.JoinTeam)).Post("/teams/join", app.joinTeam)
		r.Route("/teams/{team}/players/{player}", func(r chi.Router) {
			r.Use(app.can(access.ManageRoster))
			r.Post("/approve", app.approvePlayer)
			r.Post("/reject", app.rejectPlayer)
			r.Post("/remove", app.removePlayer)
			r.Post("/details", app.updatePlayerDetails)
		})

		r.Route("/scoresheet", func(r chi.Router) {
			r.With(app.can(access.ViewScoresheet)).Get("/", app.scoresheetIndex)
			r.With(app.can(access.CreateMatchup)).Post("/create-matchup", app.createMatchup)
			r.With(app.can(access.UpdateMatchup)).Post("/matchups/{game}", app.updateMatchup)
			r.With(app.can(access.ViewScoresheet)).Get("/{game}", app.scoresheetPage)

			// JSON endpoints used by the live board
			r.With(app.can(access.ViewScoresheet)).Get("/{game}/state", app.gameState)
			r.With(app.can(access.UpdateGameState)).Post("/{game}/update-state", app.updateGameState)
			r.With(app.can(access.RecordFieldGoal)).Post("/{game}/field-goal", app.recordFieldGoal)
			r.With(app.can(access.RecordPlayerStat)).Post("/{game}/stat", app.recordPlayerStat)
			r.With(app.can(access.SavePlayerStats)).Post("/{game}/save-stats", app.savePlayerStats)
			r.With(app.can(access.CompleteGame)).Post("/{game}/complete", app.completeGame)
		})

		r.Route("/season-management", func(r chi.Router) {
			r.Use(app.can(access.ManageSeasons))
			r.Get("/", app.seasonManagementPage)
			r.Post("/leagues", app.createLeague)
			r.Post("/leagues/{league}", app.updateLeague)
			r.Post("/leagues/{league}/activate", app.activateLeague)
			r.Post("/leagues/{league}/status", app.setLeagueStatus)
			r.Post("/leagues/{league}/teams", app.attachTeam)
			r.Post("/leagues/{league}/teams/{team}/detach", app.detachTeam)
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Use(app.can(access.ManageUsers))
			r.Get("/", app.adminUsersPage)
			r.Post("/{user}/role", app.setUserRole)
		})
	})

	return r
}

func (app *application) can(action access.Action) func(http.Handler) http.Handler {
	return middleware.RequireCapability(app.sessions, action)
}

// page builds the layout data for the current request and consumes any pending flash.
func (app *application) page(r *http.Request) views.Page {
	return views.Page{
		User:     middleware.GetAuthenticatedUser(r.Context()),
		Flash:    httputil.PopFlash(app.sessions, r.Context()),
		Location: app.cfg.Location,
	}
}

func (app *application) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	if err := views.Render(w, r, c); err != nil {
		slog.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}

// healthz reports whether the database and, when configured, the cache answer.
func (app *application) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		httputil.JSONError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if hc, ok := app.cache.(interface{ HealthCheck(context.Context) error }); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			slog.Warn("cache health check failed", "error", err)
			httputil.JSONError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	httputil.JSONSuccess(w, "ok")
}
