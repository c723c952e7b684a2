package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/AdamBeresnev/courtside/internal/middleware"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/AdamBeresnev/courtside/views"
	"github.com/go-chi/chi/v5"
	"github.com/markbates/goth/gothic"
)

func (app *application) loginPage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, views.LoginPage(app.page(r)))
}

// withProvider exposes the chi provider param where gothic looks for it.
func withProvider(r *http.Request) *http.Request {
	provider := chi.URLParam(r, "provider")
	return r.WithContext(context.WithValue(r.Context(), "provider", provider))
}

func (app *application) beginAuth(w http.ResponseWriter, r *http.Request) {
	gothic.BeginAuthHandler(w, withProvider(r))
}

func (app *application) authCallback(w http.ResponseWriter, r *http.Request) {
	r = withProvider(r)

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		httputil.BadRequest(w, "Authentication failure", err)
		return
	}

	user, err := app.users.FindOrCreateUserByProvider(r.Context(), gothUser)
	if err != nil {
		httputil.InternalServerError(w, "Failed to find or create user", err)
		return
	}

	app.logIn(w, r, user)
}

func (app *application) guestLogin(w http.ResponseWriter, r *http.Request) {
	user, err := app.users.EnsureGuestUser(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to login as guest", err)
		return
	}
	app.logIn(w, r, user)
}

func (app *application) logIn(w http.ResponseWriter, r *http.Request, user *users.User) {
	if err := app.sessions.RenewToken(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to renew session", err)
		return
	}
	app.sessions.Put(r.Context(), middleware.SessionUserKey, user.ID.String())
	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)

	http.Redirect(w, r, "/", http.StatusFound)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.Destroy(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to log out", err)
		return
	}
	httputil.Redirect(w, r, "/login")
}
