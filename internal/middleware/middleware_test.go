package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devhub/internal/middleware"
	"devhub/internal/models"
	"devhub/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// signIn stores a session for browserID the way a login through the gateway would.
func signIn(t *testing.T, store session.Storage, browserID string, user *models.User) {
	t.Helper()
	s := session.New(session.Namespaced(store, browserID))
	require.NoError(t, s.Init(context.Background(), "token-"+browserID, user))
}

func serve(h http.Handler, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const browserID = "0b8a4a1e-52c6-4f5e-9d0c-2f1f3f0d9a11"

func TestBrowserSession(t *testing.T) {
	store := session.NewMemoryStorage()
	mw := middleware.BrowserSession(store, false, zerolog.Nop())

	t.Run("new browser gets a cookie", func(t *testing.T) {
		var seen string
		rec := serve(mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.BrowserID(r)
		})), "/", "")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		require.True(t, cookies[0].HttpOnly)
		require.Equal(t, cookies[0].Value, seen)
	})

	t.Run("known browser keeps its session", func(t *testing.T) {
		signIn(t, store, browserID, &models.User{ID: 1, UserType: models.UserTypeClient})

		var authenticated bool
		rec := serve(mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated = middleware.SessionFrom(r).IsAuthenticated(r.Context())
		})), "/", browserID)

		require.Empty(t, rec.Result().Cookies())
		require.True(t, authenticated)
	})

	t.Run("malformed cookie is replaced", func(t *testing.T) {
		rec := serve(mw(okHandler), "/", "not-a-uuid")
		require.Len(t, rec.Result().Cookies(), 1)
		require.NotEqual(t, "not-a-uuid", rec.Result().Cookies()[0].Value)
	})
}

func TestGates(t *testing.T) {
	store := session.NewMemoryStorage()
	withSession := middleware.BrowserSession(store, false, zerolog.Nop())

	const (
		client = "1f0e0c4c-9f55-4d8e-8a57-6f3c2b1a0c01"
		admin  = "1f0e0c4c-9f55-4d8e-8a57-6f3c2b1a0c02"
	)
	signIn(t, store, client, &models.User{ID: 1, UserType: models.UserTypeClient, Role: models.RoleUser})
	signIn(t, store, admin, &models.User{ID: 2, UserType: models.UserTypeClient, Role: models.RoleAdmin})

	t.Run("check auth", func(t *testing.T) {
		h := withSession(middleware.CheckAuth()(okHandler))

		rec := serve(h, "/client-dashboard.html", "")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/index.html", rec.Header().Get("Location"))

		require.Equal(t, http.StatusOK, serve(h, "/register.html", "").Code)
		require.Equal(t, http.StatusOK, serve(h, "/", "").Code)
		require.Equal(t, http.StatusOK, serve(h, "/client-dashboard.html", client).Code)
		require.Equal(t, http.StatusOK, serve(h, "/app.js", "").Code)
	})

	t.Run("require auth", func(t *testing.T) {
		h := withSession(middleware.RequireAuth()(okHandler))
		require.Equal(t, http.StatusUnauthorized, serve(h, "/api/profile", "").Code)
		require.Equal(t, http.StatusOK, serve(h, "/api/profile", client).Code)
	})

	t.Run("require role", func(t *testing.T) {
		adminOnly := withSession(middleware.RequireRole(string(models.RoleAdmin))(okHandler))
		require.Equal(t, http.StatusUnauthorized, serve(adminOnly, "/api/admin/users", "").Code)
		require.Equal(t, http.StatusForbidden, serve(adminOnly, "/api/admin/users", client).Code)
		require.Equal(t, http.StatusOK, serve(adminOnly, "/api/admin/users", admin).Code)

		clientOnly := withSession(middleware.RequireRole(models.UserTypeClient)(okHandler))
		require.Equal(t, http.StatusOK, serve(clientOnly, "/api/jobs", client).Code)
	})
}

func TestRateLimiter(t *testing.T) {
	const (
		first  = "5b1d0c6e-2f0a-4c55-9a7e-0e8a9d1c2b01"
		second = "5b1d0c6e-2f0a-4c55-9a7e-0e8a9d1c2b02"
	)

	t.Run("exhausted bucket answers 429", func(t *testing.T) {
		h := middleware.NewRateLimiter(rate.Limit(0.001), 1).Middleware()(okHandler)

		require.Equal(t, http.StatusOK, serve(h, "/", first).Code)

		rec := serve(h, "/", first)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		var body middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "rate_limit_exceeded", body.Error)
		require.Equal(t, int64(5000), body.DismissAfterMs)
	})

	t.Run("browsers do not throttle each other", func(t *testing.T) {
		limiter := middleware.NewRateLimiter(rate.Limit(0.001), 20)
		h := limiter.Middleware()(okHandler)

		for i := 0; i < 20; i++ {
			require.Equal(t, http.StatusOK, serve(h, "/api/session", first).Code)
		}
		require.Equal(t, http.StatusTooManyRequests, serve(h, "/api/session", first).Code)

		require.Equal(t, http.StatusOK, serve(h, "/api/auth/login", second).Code)
		require.Equal(t, 2, limiter.Len())
	})

	t.Run("cookieless clients share their address bucket", func(t *testing.T) {
		h := middleware.NewRateLimiter(rate.Limit(0.001), 1).Middleware()(okHandler)

		require.Equal(t, http.StatusOK, serve(h, "/", "").Code)
		require.Equal(t, http.StatusTooManyRequests, serve(h, "/", "not-a-uuid").Code)
	})
}

func TestErrorHandling(t *testing.T) {
	h := middleware.ErrorHandling(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, "/", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal_error")
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var id string
	h := middleware.RequestLogging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = middleware.GetRequestID(r)
	}))

	rec := serve(h, "/", "")
	require.NotEmpty(t, id)
	require.Equal(t, id, rec.Header().Get("X-Request-ID"))
}
