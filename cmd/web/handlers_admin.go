package main

import (
	"fmt"
	"net/http"

	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/AdamBeresnev/courtside/internal/middleware"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/AdamBeresnev/courtside/views"
)

func (app *application) adminUsersPage(w http.ResponseWriter, r *http.Request) {
	list, err := app.users.ListUsers(r.Context())
	if err != nil {
		httputil.ServiceError(w, "Failed to get users", err)
		return
	}
	app.render(w, r, views.AdminUsersPage(app.page(r), list))
}

func (app *application) setUserRole(w http.ResponseWriter, r *http.Request) {
	const back = "/admin/users"

	userID, err := httputil.URLUUID(r, "user")
	if err != nil {
		httputil.RedirectWithFlash(w, r, app.sessions, back, httputil.FlashError, err.Error())
		return
	}

	role := users.Role(r.FormValue("role"))
	if err := app.users.SetUserRole(r.Context(), middleware.GetAuthenticatedUser(r.Context()), userID, role); err != nil {
		httputil.FormError(w, r, app.sessions, back, "Failed to update role", err)
		return
	}
	httputil.RedirectWithFlash(w, r, app.sessions, back, httputil.FlashSuccess, fmt.Sprintf("Role changed to %s.", role))
}
