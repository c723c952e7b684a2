package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdamBeresnev/courtside/internal/access"
	"github.com/AdamBeresnev/courtside/internal/dbtest"
	"github.com/AdamBeresnev/courtside/internal/store"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
})

func asUser(r *http.Request, role users.Role) *http.Request {
	u := &users.User{ID: uuid.New(), Username: "tester", Role: role}
	return r.WithContext(WithUser(r.Context(), u))
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teams", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	r := httptest.NewRequest(http.MethodGet, "/teams", nil)
	r.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodGet, "/teams", nil), users.RolePlayer))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireCapability(t *testing.T) {
	sm := scs.New()
	h := sm.LoadAndSave(RequireCapability(sm, access.SavePlayerStats)(okHandler))

	jsonRequest := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/scoresheet/x/save-stats", nil)
		r.Header.Set("Content-Type", "application/json")
		return r
	}

	testCases := []struct {
		name       string
		request    *http.Request
		wantStatus int
		wantBody   string
		wantTo     string
	}{
		{"referee allowed", asUser(jsonRequest(), users.RoleReferee), http.StatusOK, "ok", ""},
		{"committee allowed", asUser(jsonRequest(), users.RoleCommittee), http.StatusOK, "ok", ""},
		{"coach gets json 403", asUser(jsonRequest(), users.RoleCoach), http.StatusForbidden, "limited to: referee, committee, admin", ""},
		{"anonymous gets json 403", jsonRequest(), http.StatusForbidden, "login required", ""},
		{"coach page redirects home", asUser(httptest.NewRequest(http.MethodPost, "/x", nil), users.RoleCoach), http.StatusSeeOther, "", "/"},
		{"anonymous page goes to login", httptest.NewRequest(http.MethodPost, "/x", nil), http.StatusSeeOther, "", "/login"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tc.request)
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tc.wantBody)
			}
			if tc.wantTo != "" {
				assert.Equal(t, tc.wantTo, rec.Header().Get("Location"))
			}
		})
	}
}

func TestLoadAuthenticatedUser(t *testing.T) {
	database := dbtest.New(t)
	userID := dbtest.User(t, database, "ann", "coach")

	sm := scs.New()
	mux := http.NewServeMux()
	mux.HandleFunc("/login-as/", func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionUserKey, r.URL.Path[len("/login-as/"):])
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		u := GetAuthenticatedUser(r.Context())
		if u == nil {
			fmt.Fprint(w, "anonymous")
			return
		}
		id, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		fmt.Fprintf(w, "%s:%s:%t", u.Username, u.Role, id == u.ID)
	})
	h := sm.LoadAndSave(LoadAuthenticatedUser(sm, store.NewUserStore(database))(mux))

	whoami := func(login string) string {
		var cookies []*http.Cookie
		if login != "" {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login-as/"+login, nil))
			cookies = rec.Result().Cookies()
		}
		r := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		for _, c := range cookies {
			r.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Body.String()
	}

	assert.Equal(t, "anonymous", whoami(""))
	assert.Equal(t, "ann:coach:true", whoami(userID.String()))
	assert.Equal(t, "anonymous", whoami("not-a-uuid"))
	assert.Equal(t, "anonymous", whoami(uuid.NewString()), "unknown users are logged out")
}

func TestGetAuthenticatedUser_Empty(t *testing.T) {
	assert.Nil(t, GetAuthenticatedUser(context.Background()))
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
