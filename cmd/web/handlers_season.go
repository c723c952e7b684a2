package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/AdamBeresnev/courtside/internal/service"
	"github.com/AdamBeresnev/courtside/views"
	"github.com/google/uuid"
)

const seasonsURL = "/season-management"

func (app *application) seasonManagementPage(w http.ResponseWriter, r *http.Request) {
	m, err := app.seasons.ListLeagues(r.Context())
	if err != nil {
		httputil.ServiceError(w, "Failed to get leagues", err)
		return
	}
	app.render(w, r, views.SeasonManagementPage(app.page(r), m))
}

func formDate(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.Form.Get(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date", strings.ReplaceAll(name, "_", " "))
	}
	return &t, nil
}

// weightFields maps the MVP weight inputs onto their field in MVPWeights.
var weightFields = map[string]func(*hoops.MVPWeights) *float64{
	"mvp_points":           func(w *hoops.MVPWeights) *float64 { return &w.Points },
	"mvp_rebounds":         func(w *hoops.MVPWeights) *float64 { return &w.Rebounds },
	"mvp_assists":          func(w *hoops.MVPWeights) *float64 { return &w.Assists },
	"mvp_steals":           func(w *hoops.MVPWeights) *float64 { return &w.Steals },
	"mvp_blocks":           func(w *hoops.MVPWeights) *float64 { return &w.Blocks },
	"mvp_efficiency":       func(w *hoops.MVPWeights) *float64 { return &w.Efficiency },
	"mvp_foul_penalty":     func(w *hoops.MVPWeights) *float64 { return &w.FoulPenalty },
	"mvp_turnover_penalty": func(w *hoops.MVPWeights) *float64 { return &w.TurnoverPenalty },
}

// leagueForm reads a league form. Weight inputs left blank keep their value in base.
func (app *application) leagueForm(r *http.Request, base hoops.MVPWeights) (service.LeagueInput, error) {
	var in service.LeagueInput
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("invalid form data")
	}

	in.Name = r.Form.Get("name")
	year, err := httputil.FormInt(r, "year")
	if err != nil {
		return in, err
	}
	if year != nil {
		in.Year = *year
	}
	if in.StartDate, err = formDate(r, "start_date"); err != nil {
		return in, err
	}
	if in.EndDate, err = formDate(r, "end_date"); err != nil {
		return in, err
	}

	weights := base
	set := false
	for name, field := range weightFields {
		v, err := httputil.FormFloat(r, name)
		if err != nil {
			return in, err
		}
		if v != nil {
			*field(&weights) = *v
			set = true
		}
	}
	if set {
		in.Weights = &weights
	}
	return in, nil
}

func (app *application) createLeague(w http.ResponseWriter, r *http.Request) {
	in, err := app.leagueForm(r, app.cfg.League.MVP)
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, seasonsURL, httputil.FlashError, err.Error())
		return
	}

	league, err := app.seasons.CreateLeague(r.Context(), in)
	if err != nil {
		httputil.FormError(w, r, app.sessions, seasonsURL, "Failed to create league", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, seasonsURL, httputil.FlashSuccess,
		fmt.Sprintf("League %s %d created.", league.Name, league.Year))
}

func (app *application) updateLeague(w http.ResponseWriter, r *http.Request) {
	app.leagueAction(w, r, "League updated.", func(id uuid.UUID) error {
		base, err := app.seasons.LeagueWeights(r.Context(), id)
		if err != nil {
			return err
		}
		in, err := app.leagueForm(r, base)
		if err != nil {
			return fmt.Errorf("%w: %s", service.ErrInvalid, err)
		}
		_, err = app.seasons.UpdateLeague(r.Context(), id, in)
		return err
	})
}

func (app *application) activateLeague(w http.ResponseWriter, r *http.Request) {
	app.leagueAction(w, r, "League is now active.", func(id uuid.UUID) error {
		return app.seasons.ActivateLeague(r.Context(), id)
	})
}

func (app *application) setLeagueStatus(w http.ResponseWriter, r *http.Request) {
	app.leagueAction(w, r, "League status updated.", func(id uuid.UUID) error {
		return app.seasons.SetLeagueStatus(r.Context(), id, hoops.LeagueStatus(r.FormValue("status")))
	})
}

func (app *application) attachTeam(w http.ResponseWriter, r *http.Request) {
	app.leagueAction(w, r, "Team added to the league.", func(id uuid.UUID) error {
		teamID, err := uuid.Parse(r.FormValue("team_id"))
		if err != nil {
			return fmt.Errorf("%w: pick a team to add", service.ErrInvalid)
		}
		return app.seasons.AttachTeam(r.Context(), id, teamID)
	})
}

func (app *application) detachTeam(w http.ResponseWriter, r *http.Request) {
	app.leagueAction(w, r, "Team removed from the league.", func(id uuid.UUID) error {
		teamID, err := httputil.URLUUID(r, "team")
		if err != nil {
			return fmt.Errorf("%w: %s", service.ErrInvalid, err)
		}
		return app.seasons.DetachTeam(r.Context(), id, teamID)
	})
}

// leagueAction runs fn for the league in the URL and reports the outcome as a flash.
func (app *application) leagueAction(w http.ResponseWriter, r *http.Request, done string, fn func(id uuid.UUID) error) {
	leagueID, err := httputil.URLUUID(r, "league")
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, seasonsURL, httputil.FlashError, err.Error())
		return
	}
	if err := fn(leagueID); err != nil {
		httputil.FormError(w, r, app.sessions, seasonsURL, "Failed to update league", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, seasonsURL, httputil.FlashSuccess, done)
}
