package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/AdamBeresnev/courtside/internal/access"
	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/AdamBeresnev/courtside/internal/store"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/discord"
	"github.com/markbates/goth/providers/google"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

// SessionUserKey is where the logged in user's id lives in the session.
const SessionUserKey = "userID"

func InitAuth() {
	discordKey := os.Getenv("DISCORD_KEY")
	discordSecret := os.Getenv("DISCORD_SECRET")
	discordCallbackURL := os.Getenv("DISCORD_CALLBACK_URL")

	googleKey := os.Getenv("GOOGLE_KEY")
	googleSecret := os.Getenv("GOOGLE_SECRET")
	googleCallbackURL := os.Getenv("GOOGLE_CALLBACK_URL")

	goth.UseProviders(
		discord.New(discordKey, discordSecret, discordCallbackURL, discord.ScopeIdentify, discord.ScopeEmail),
		google.New(googleKey, googleSecret, googleCallbackURL, "email", "profile"),
	)
}

// LoadAuthenticatedUser puts the session's user, if any, into the request
// context. It never rejects a request.
func LoadAuthenticatedUser(sessionManager *scs.SessionManager, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := sessionManager.GetString(r.Context(), SessionUserKey)
			if userIDStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				sessionManager.Remove(r.Context(), SessionUserKey)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userStore.GetUser(r.Context(), userID)
			if err != nil {
				// Stale session, e.g. the database was reset
				slog.Warn("session user not found", "user_id", userID, "error", err)
				sessionManager.Remove(r.Context(), SessionUserKey)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth sends anonymous visitors to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthenticatedUser(r.Context()) == nil {
			if httputil.WantsJSON(r) {
				httputil.JSONError(w, http.StatusForbidden, "login required")
				return
			}
			httputil.Redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability lets a request through only if the user's role may
// perform action. Scripts get a JSON 403, pages a flash and a redirect home.
func RequireCapability(sessionManager *scs.SessionManager, action access.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetAuthenticatedUser(r.Context())
			if access.Can(user, action) {
				next.ServeHTTP(w, r)
				return
			}

			msg := deniedMessage(user, action)
			slog.Warn("capability denied", "action", action, "path", r.URL.Path, "user", userLabel(user))

			if httputil.WantsJSON(r) {
				httputil.JSONError(w, http.StatusForbidden, msg)
				return
			}
			if user == nil {
				httputil.Redirect(w, r, "/login")
				return
			}
			httputil.RedirectWithFlash(w, r, sessionManager, "/", httputil.FlashError, msg)
		})
	}
}

func deniedMessage(user *users.User, action access.Action) string {
	if user == nil {
		return "login required"
	}
	roles := access.Roles(action)
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return fmt.Sprintf("this action is limited to: %s", strings.Join(names, ", "))
}

func userLabel(user *users.User) string {
	if user == nil {
		return "anonymous"
	}
	return fmt.Sprintf("%s (%s)", user.ID, user.Role)
}

// WithUser stores user and its id in ctx.
func WithUser(ctx context.Context, user *users.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, users.UserKey, user)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(UserIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}

func GetAuthenticatedUser(ctx context.Context) *users.User {
	val := ctx.Value(users.UserKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*users.User)
	if !ok {
		return nil
	}
	return user
}
