package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"devhub/internal/api"
	"devhub/internal/backendfake"
	"devhub/internal/config"
	"devhub/internal/router"
	"devhub/internal/session"
	"devhub/internal/signup"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type gateway struct {
	url        string
	backendURL string
}

func setupGateway(t *testing.T, opts ...func(*config.Config)) *gateway {
	t.Helper()

	backend := backendfake.NewServer("test-secret", zerolog.Nop())
	require.NoError(t, backend.SeedAdmin("admin@example.com", "adminpass"))
	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	static := t.TempDir()
	for _, page := range []string{session.PageIndex, session.PageLogin, session.PageClientDashboard, session.PageDeveloperDashboard} {
		require.NoError(t, os.WriteFile(filepath.Join(static, page), []byte("<html>"+page+"</html>"), 0o644))
	}

	cfg := config.Config{
		APIBaseURL:     backendSrv.URL + "/api",
		StaticDir:      static,
		CORSOrigins:    []string{"*"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		RequestTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	srv := httptest.NewServer(router.SetupRouter(cfg, session.NewMemoryStorage(), signup.NewRegistry(), zerolog.Nop()))
	t.Cleanup(srv.Close)

	return &gateway{url: srv.URL, backendURL: cfg.APIBaseURL}
}

// registerClient creates a client account straight on the backend.
func (g *gateway) registerClient(t *testing.T, email string) {
	t.Helper()
	a := api.New(api.NewClient(g.backendURL, 5*time.Second, session.New(session.NewMemoryStorage()), zerolog.Nop()))
	_, err := a.Auth.Register(context.Background(), map[string]string{
		"fullName": "Carol Client",
		"email":    email,
		"password": "password123",
		"userType": "Client",
	})
	require.NoError(t, err)
}

type browser struct {
	t    *testing.T
	base string
	http *http.Client
}

func (g *gateway) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: g.url,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) call(method, path string, body any) (*http.Response, map[string]any) {
	b.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(b.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, b.base+path, &buf)
	require.NoError(b.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.http.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(b.t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func (b *browser) login(email, password string) (*http.Response, map[string]any) {
	return b.call(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
}

func TestSignupFlow(t *testing.T) {
	g := setupGateway(t)
	b := g.browser(t)

	resp, state := b.call(http.MethodGet, "/api/signup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 1, state["step"])

	t.Run("account gate", func(t *testing.T) {
		resp, body := b.call(http.MethodPost, "/api/signup/next", map[string]any{
			"step": 2,
			"values": map[string]string{
				"fullName": "Dana Dev", "email": "dana@example.com",
				"password": "secret1", "confirmPassword": "secret2", "userType": "Developer",
			},
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "validation_failed", body["error"])
		require.Equal(t, "Passwords do not match", body["message"])
		require.EqualValues(t, 5000, body["dismissAfterMs"])
	})

	resp, state = b.call(http.MethodPost, "/api/signup/next", map[string]any{
		"step": 2,
		"values": map[string]string{
			"fullName": "Dana Dev", "email": "dana@example.com",
			"password": "secret1", "confirmPassword": "secret1", "userType": "Developer",
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 2, state["step"])
	require.NotContains(t, state["draft"], "password")

	resp, _ = b.call(http.MethodPost, "/api/signup/next", map[string]any{
		"step":   3,
		"values": map[string]string{"username": "dana", "skills": "Go, Postgres"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("skipping ahead is rejected", func(t *testing.T) {
		resp, body := b.call(http.MethodPost, "/api/signup/next", map[string]any{"step": 3})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		require.Equal(t, "invalid_step", body["error"])
	})

	resp, body := b.call(http.MethodPost, "/api/signup/submit", map[string]any{
		"values": map[string]string{"phone": "+1 555 0100"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Registration successful! Redirecting...", body["message"])
	require.Equal(t, session.PageDeveloperDashboard, body["dashboard"])
	require.EqualValues(t, 1000, body["redirectAfterMs"])

	resp, body = b.call(http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["authenticated"])

	t.Run("own dashboard loads", func(t *testing.T) {
		resp, body := b.call(http.MethodGet, "/api/dashboard/developer", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "30s", resp.Header.Get("X-Refresh-Interval"))
		require.NotNil(t, body["developer"])
	})

	t.Run("other dashboards are refused", func(t *testing.T) {
		resp, body := b.call(http.MethodGet, "/api/dashboard/client", nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		require.Equal(t, "access_denied", body["error"])
	})

	t.Run("wizard starts over", func(t *testing.T) {
		_, state := b.call(http.MethodGet, "/api/signup", nil)
		require.EqualValues(t, 1, state["step"])
	})
}

func TestLogin(t *testing.T) {
	g := setupGateway(t)
	g.registerClient(t, "carol@example.com")

	t.Run("wrong password", func(t *testing.T) {
		b := g.browser(t)
		resp, body := b.login("carol@example.com", "nope")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "request_failed", body["error"])
		require.Equal(t, "Invalid credentials", body["message"])

		_, body = b.call(http.MethodGet, "/api/session", nil)
		require.Equal(t, false, body["authenticated"])
	})

	t.Run("client", func(t *testing.T) {
		b := g.browser(t)
		resp, body := b.login("carol@example.com", "password123")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, session.PageClientDashboard, body["dashboard"])

		resp, body = b.call(http.MethodGet, "/api/auth/me", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "carol@example.com", body["user"].(map[string]any)["email"])

		resp, _ = b.call(http.MethodGet, "/api/dashboard/client", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = b.call(http.MethodPost, "/api/jobs", map[string]string{"title": "Landing page", "description": "Static site", "budget": "800"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body = b.call(http.MethodGet, "/api/admin/users", nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		require.Equal(t, "forbidden", body["error"])

		resp, body = b.call(http.MethodPost, "/api/auth/logout", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, session.PageIndex, body["redirect"])

		resp, _ = b.call(http.MethodGet, "/api/dashboard/client", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin", func(t *testing.T) {
		b := g.browser(t)
		resp, body := b.login("admin@example.com", "adminpass")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, session.PageAdminDashboard, body["dashboard"])

		resp, body = b.call(http.MethodGet, "/api/admin/users?search=carol", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, body["users"], 1)
	})

	t.Run("browsers do not share sessions", func(t *testing.T) {
		signedIn := g.browser(t)
		resp, _ := signedIn.login("carol@example.com", "password123")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, body := g.browser(t).call(http.MethodGet, "/api/session", nil)
		require.Equal(t, false, body["authenticated"])
	})
}

func TestAccessWithoutSession(t *testing.T) {
	g := setupGateway(t)
	b := g.browser(t)

	t.Run("api calls", func(t *testing.T) {
		for _, path := range []string{"/api/developers", "/api/profile", "/api/dashboard/client", "/api/auth/me"} {
			resp, body := b.call(http.MethodGet, path, nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
			require.Equal(t, "unauthorized", body["error"], path)
		}
	})

	t.Run("protected page redirects", func(t *testing.T) {
		resp, _ := b.call(http.MethodGet, "/"+session.PageClientDashboard, nil)
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/"+session.PageIndex, resp.Header.Get("Location"))
	})

	t.Run("public page is served", func(t *testing.T) {
		resp, _ := b.call(http.MethodGet, "/"+session.PageLogin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non json body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, g.url+"/api/auth/login", strings.NewReader("email=x"))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := b.http.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		resp, body := b.call(http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "ok", body["status"])
	})
}

func TestRateLimitIsPerBrowser(t *testing.T) {
	g := setupGateway(t, func(cfg *config.Config) {
		cfg.RateLimitRPS = 10
		cfg.RateLimitBurst = 20
	})
	g.registerClient(t, "carol@example.com")

	busy := g.browser(t)
	for i := 0; i < 30; i++ {
		resp, _ := busy.call(http.MethodGet, "/"+session.PageLogin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "pages are not rate limited")
	}

	throttled := false
	for i := 0; i < 40 && !throttled; i++ {
		resp, _ := busy.call(http.MethodGet, "/api/session", nil)
		throttled = resp.StatusCode == http.StatusTooManyRequests
	}
	require.True(t, throttled)

	fresh := g.browser(t)
	resp, _ := fresh.call(http.MethodGet, "/"+session.PageLogin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body := fresh.login("carol@example.com", "password123")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
}

func TestContentSecurityPolicy(t *testing.T) {
	g := setupGateway(t)
	b := g.browser(t)

	resp, _ := b.call(http.MethodGet, "/api/session", nil)
	require.Contains(t, resp.Header.Get("Content-Security-Policy"), "default-src 'none'")

	resp, _ = b.call(http.MethodGet, "/"+session.PageLogin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Content-Security-Policy"))
}
