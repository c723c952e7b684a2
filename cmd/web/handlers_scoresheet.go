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

const inputTimeLayout = "2006-01-02T15:04"

func (app *application) scoresheetIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := app.scoresheet.ListScoresheetGames(r.Context())
	if err != nil {
		httputil.ServiceError(w, "Failed to get games", err)
		return
	}
	app.render(w, r, views.ScoresheetIndexPage(app.page(r), idx))
}

func (app *application) scoresheetPage(w http.ResponseWriter, r *http.Request) {
	gameID, err := httputil.URLUUID(r, "game")
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	board, err := app.scoresheet.GetScoresheet(r.Context(), gameID)
	if err != nil {
		httputil.ServiceError(w, "Failed to get scoresheet", err)
		return
	}
	app.render(w, r, views.ScoresheetPage(app.page(r), board))
}

// matchupForm reads the fields shared by the create and edit matchup forms.
func (app *application) matchupForm(r *http.Request) (service.MatchupInput, error) {
	var in service.MatchupInput
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("invalid form data")
	}

	var err error
	if in.TeamAID, err = formUUID(r, "team_a_id"); err != nil {
		return in, err
	}
	if in.TeamBID, err = formUUID(r, "team_b_id"); err != nil {
		return in, err
	}

	if raw := strings.TrimSpace(r.Form.Get("scheduled_at")); raw != "" {
		in.ScheduledAt, err = time.ParseInLocation(inputTimeLayout, raw, app.cfg.Location)
		if err != nil {
			return in, fmt.Errorf("invalid tip-off time")
		}
	}
	in.Venue = r.Form.Get("venue")
	in.Status = hoops.GameStatus(r.Form.Get("status"))

	if in.Config.TotalQuarters, err = httputil.FormInt(r, "total_quarters"); err != nil {
		return in, err
	}
	if in.Config.MinutesPerQuarter, err = httputil.FormInt(r, "minutes_per_quarter"); err != nil {
		return in, err
	}
	if in.Config.TimeoutsPerQuarter, err = httputil.FormInt(r, "timeouts_per_quarter"); err != nil {
		return in, err
	}
	return in, nil
}

func formUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Form.Get(name))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", strings.ReplaceAll(name, "_", " "))
	}
	return id, nil
}

func (app *application) createMatchup(w http.ResponseWriter, r *http.Request) {
	in, err := app.matchupForm(r)
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, "/scoresheet", httputil.FlashError, err.Error())
		return
	}

	league, err := app.seasons.ActiveLeague(r.Context())
	if err != nil {
		httputil.FormError(w, r, app.sessions, "/scoresheet", "Failed to create matchup", err)
		return
	}
	in.LeagueID = league.ID
	in.Status = ""

	if _, err := app.scoresheet.CreateMatchup(r.Context(), in); err != nil {
		httputil.FormError(w, r, app.sessions, "/scoresheet", "Failed to create matchup", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, "/scoresheet", httputil.FlashSuccess, "Matchup created.")
}

func (app *application) updateMatchup(w http.ResponseWriter, r *http.Request) {
	gameID, err := httputil.URLUUID(r, "game")
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, "/scoresheet", httputil.FlashError, err.Error())
		return
	}
	in, err := app.matchupForm(r)
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, "/scoresheet", httputil.FlashError, err.Error())
		return
	}

	if _, err := app.scoresheet.UpdateMatchup(r.Context(), gameID, in); err != nil {
		httputil.FormError(w, r, app.sessions, "/scoresheet", "Failed to update matchup", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, "/scoresheet", httputil.FlashSuccess, "Matchup updated.")
}

// JSON endpoints

func jsonGameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	gameID, err := httputil.URLUUID(r, "game")
	if err != nil {
		httputil.JSONError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, false
	}
	return gameID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httputil.DecodeJSON(r, v); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (app *application) gameState(w http.ResponseWriter, r *http.Request) {
	gameID, ok := jsonGameID(w, r)
	if !ok {
		return
	}

	state, err := app.scoresheet.GetGameState(r.Context(), gameID)
	if err != nil {
		httputil.JSONServiceError(w, "Failed to get game state", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

func (app *application) updateGameState(w http.ResponseWriter, r *http.Request) {
	gameID, ok := jsonGameID(w, r)
	if !ok {
		return
	}
	var update service.GameStateUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	if _, err := app.scoresheet.UpdateGameState(r.Context(), gameID, update); err != nil {
		httputil.JSONServiceError(w, "Failed to update game state", err)
		return
	}
	httputil.JSONSuccess(w, "game state updated")
}

// currentQuarter fills in the board's quarter when a request leaves it out.
func (app *application) currentQuarter(r *http.Request, gameID uuid.UUID, quarter *int) (int, error) {
	if quarter != nil {
		return *quarter, nil
	}
	state, err := app.scoresheet.GetGameState(r.Context(), gameID)
	if err != nil {
		return 0, err
	}
	return state.Quarter, nil
}

type fieldGoalRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	Points   int       `json:"points"`
	Made     bool      `json:"made"`
	Quarter  *int      `json:"quarter"`
}

func (app *application) recordFieldGoal(w http.ResponseWriter, r *http.Request) {
	gameID, ok := jsonGameID(w, r)
	if !ok {
		return
	}
	var req fieldGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quarter, err := app.currentQuarter(r, gameID, req.Quarter)
	if err != nil {
		httputil.JSONServiceError(w, "Failed to record field goal", err)
		return
	}
	if _, err := app.scoresheet.RecordFieldGoal(r.Context(), gameID, req.PlayerID, req.Points, req.Made, quarter); err != nil {
		httputil.JSONServiceError(w, "Failed to record field goal", err)
		return
	}

	result := "missed"
	if req.Made {
		result = "made"
	}
	httputil.JSONSuccess(w, fmt.Sprintf("%d point shot %s", req.Points, result))
}

type statRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	StatType string    `json:"stat_type"`
	Value    int       `json:"value"`
	Quarter  *int      `json:"quarter"`
}

func (app *application) recordPlayerStat(w http.ResponseWriter, r *http.Request) {
	gameID, ok := jsonGameID(w, r)
	if !ok {
		return
	}
	var req statRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quarter, err := app.currentQuarter(r, gameID, req.Quarter)
	if err != nil {
		httputil.JSONServiceError(w, "Failed to record stat", err)
		return
	}
	if _, err := app.scoresheet.RecordPlayerStat(r.Context(), gameID, req.PlayerID, req.StatType, req.Value, quarter); err != nil {
		httputil.JSONServiceError(w, "Failed to record stat", err)
		return
	}
	httputil.JSONSuccess(w, fmt.Sprintf("%s recorded", req.StatType))
}

type saveStatsRequest struct {
	Stats []hoops.PlayerStat `json:"stats"`
}

func (app *application) savePlayerStats(w http.ResponseWriter, r *http.Request) {
	gameID, ok := jsonGameID(w, r)
	if !ok {
		return
	}
	var req saveStatsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := app.scoresheet.SavePlayerStats(r.Context(), gameID, req.Stats)
	if err != nil {
		httputil.JSONServiceError(w, "Failed to save stats", err)
		return
	}

	msg := fmt.Sprintf("saved %d stat lines", result.Saved)
	if result.Skipped > 0 {
		msg += fmt.Sprintf(", skipped %d unknown players", result.Skipped)
	}
	httputil.JSONSuccess(w, msg)
}

func (app *application) completeGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := jsonGameID(w, r)
	if !ok {
		return
	}

	if _, err := app.scoresheet.CompleteGame(r.Context(), gameID); err != nil {
		httputil.JSONServiceError(w, "Failed to complete game", err)
		return
	}
	httputil.JSONSuccess(w, "game completed")
}
