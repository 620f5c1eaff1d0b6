package middleware

import (
	"context"
	"net/http"
	"strings"

	"devhub/internal/models"
	"devhub/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const SessionCookieName = "devhub_sid"

// BrowserSession gives every browser a stable id cookie and attaches that
// browser's Session to the request context.
func BrowserSession(store session.Storage, secureCookie bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			browserID := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					browserID = id.String()
				}
			}
			if browserID == "" {
				browserID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    browserID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
				logger.Debug().Str("browser_id", browserID).Msg("New browser session")
			}

			ctx := context.WithValue(r.Context(), browserIDKey, browserID)
			ctx = context.WithValue(ctx, sessionKey, session.New(session.Namespaced(store, browserID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func BrowserID(r *http.Request) string {
	id, _ := r.Context().Value(browserIDKey).(string)
	return id
}

// SessionFrom returns the browser's session, or an unbacked one when the
// BrowserSession middleware did not run.
func SessionFrom(r *http.Request) *session.Session {
	if s, ok := r.Context().Value(sessionKey).(*session.Session); ok {
		return s
	}
	return session.New(nil)
}

// CheckAuth redirects page loads to the landing page when the browser holds
// no token and the page is not public. It is a UX redirect, not access
// control.
func CheckAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPageRequest(r) {
				if redirect, ok := session.CheckAuth(r.Context(), SessionFrom(r), r.URL.Path); !ok {
					http.Redirect(w, r, "/"+redirect, http.StatusFound)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPageRequest(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	return r.URL.Path == "/" || strings.HasSuffix(r.URL.Path, ".html")
}

// RequireAuth rejects API calls from browsers without a token.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SessionFrom(r).IsAuthenticated(r.Context()) {
				RespondWithError(w, http.StatusUnauthorized, "unauthorized", "Please log in first")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole checks the cached user record against allowed user types or
// the admin role. The backend still enforces access on every call.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := SessionFrom(r).CurrentUser(r.Context())
			if err != nil || user == nil {
				RespondWithError(w, http.StatusUnauthorized, "unauthorized", "Please log in first")
				return
			}

			for _, role := range allowedRoles {
				if hasRole(user, role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			RespondWithError(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
		})
	}
}

func hasRole(user *models.User, role string) bool {
	if role == string(models.RoleAdmin) {
		return user.IsAdmin()
	}
	return user.UserType == role
}
