package main

import (
	"net/http"

	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/AdamBeresnev/courtside/views"
)

func (app *application) schedulePage(w http.ResponseWriter, r *http.Request) {
	schedule, err := app.stats.Schedule(r.Context(), app.cfg.Location)
	if err != nil {
		httputil.ServiceError(w, "Failed to get schedule", err)
		return
	}
	app.render(w, r, views.SchedulePage(app.page(r), schedule))
}

func (app *application) leaderboardPage(w http.ResponseWriter, r *http.Request) {
	lb, err := app.stats.Leaderboard(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		httputil.ServiceError(w, "Failed to get leaderboard", err)
		return
	}
	app.render(w, r, views.LeaderboardPage(app.page(r), lb))
}

func (app *application) standingsPage(w http.ResponseWriter, r *http.Request) {
	standings, err := app.stats.Standings(r.Context())
	if err != nil {
		httputil.ServiceError(w, "Failed to get standings", err)
		return
	}
	app.render(w, r, views.StandingsPage(app.page(r), standings))
}

func (app *application) teamPage(w http.ResponseWriter, r *http.Request) {
	teamID, err := httputil.URLUUID(r, "team")
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	detail, err := app.stats.TeamDetail(r.Context(), teamID)
	if err != nil {
		httputil.ServiceError(w, "Failed to get team", err)
		return
	}
	app.render(w, r, views.TeamPage(app.page(r), detail))
}

func (app *application) gamePage(w http.ResponseWriter, r *http.Request) {
	gameID, err := httputil.URLUUID(r, "game")
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	detail, err := app.stats.GameDetail(r.Context(), gameID)
	if err != nil {
		httputil.ServiceError(w, "Failed to get game", err)
		return
	}
	app.render(w, r, views.GamePage(app.page(r), detail))
}

// playerSeason serves one player's line in the active league as JSON.
func (app *application) playerSeason(w http.ResponseWriter, r *http.Request) {
	playerID, err := httputil.URLUUID(r, "player")
	if err != nil {
		httputil.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	line, err := app.stats.PlayerSeason(r.Context(), playerID)
	if err != nil {
		httputil.JSONServiceError(w, "Failed to get season line", err)
		return
	}
	if line == nil {
		httputil.JSONError(w, http.StatusNotFound, "no games played this season")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, line)
}
