package main

import (
	"fmt"
	"net/http"

	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/AdamBeresnev/courtside/internal/middleware"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/AdamBeresnev/courtside/views"
	"github.com/google/uuid"
)

func (app *application) teamsPage(w http.ResponseWriter, r *http.Request) {
	mine, err := app.roster.ListTeamsForUser(r.Context(), middleware.GetAuthenticatedUser(r.Context()))
	if err != nil {
		httputil.ServiceError(w, "Failed to get teams", err)
		return
	}
	app.render(w, r, views.TeamsPage(app.page(r), mine))
}

func (app *application) createTeam(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}

	team, err := app.roster.CreateTeam(r.Context(), middleware.GetAuthenticatedUser(r.Context()), r.Form.Get("name"))
	if err != nil {
		httputil.FormError(w, r, app.sessions, "/teams", "Failed to create team", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, "/teams", httputil.FlashSuccess,
		fmt.Sprintf("Team %s created. Share join code %s with your players.", team.Name, team.JoinCode))
}

func (app *application) joinTeam(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}

	team, err := app.roster.JoinTeam(r.Context(), middleware.GetAuthenticatedUser(r.Context()), r.Form.Get("join_code"))
	if err != nil {
		httputil.FormError(w, r, app.sessions, "/teams", "Failed to join team", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, "/teams", httputil.FlashSuccess,
		fmt.Sprintf("Request to join %s sent. The coach has to approve it.", team.Name))
}

// rosterAction parses the team and player ids and runs fn on behalf of the current coach.
func (app *application) rosterAction(w http.ResponseWriter, r *http.Request, done string,
	fn func(coach *users.User, teamID, playerID uuid.UUID) error) {

	teamID, err := httputil.URLUUID(r, "team")
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, "/teams", httputil.FlashError, err.Error())
		return
	}
	playerID, err := httputil.URLUUID(r, "player")
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, "/teams", httputil.FlashError, err.Error())
		return
	}

	if err := fn(middleware.GetAuthenticatedUser(r.Context()), teamID, playerID); err != nil {
		httputil.FormError(w, r, app.sessions, "/teams", "Failed to update roster", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, "/teams", httputil.FlashSuccess, done)
}

func (app *application) approvePlayer(w http.ResponseWriter, r *http.Request) {
	app.rosterAction(w, r, "Player approved.", func(coach *users.User, teamID, playerID uuid.UUID) error {
		return app.roster.ApproveRequest(r.Context(), coach, teamID, playerID)
	})
}

func (app *application) rejectPlayer(w http.ResponseWriter, r *http.Request) {
	app.rosterAction(w, r, "Request rejected.", func(coach *users.User, teamID, playerID uuid.UUID) error {
		return app.roster.RejectRequest(r.Context(), coach, teamID, playerID)
	})
}

func (app *application) removePlayer(w http.ResponseWriter, r *http.Request) {
	app.rosterAction(w, r, "Player removed.", func(coach *users.User, teamID, playerID uuid.UUID) error {
		return app.roster.RemovePlayer(r.Context(), coach, teamID, playerID)
	})
}

func (app *application) updatePlayerDetails(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	jersey, err := httputil.FormInt(r, "jersey_number")
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, "/teams", httputil.FlashError, err.Error())
		return
	}

	app.rosterAction(w, r, "Player updated.", func(coach *users.User, teamID, playerID uuid.UUID) error {
		return app.roster.UpdatePlayerDetails(r.Context(), coach, teamID, playerID, jersey, r.Form.Get("position"))
	})
}
