package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"devhub/internal/api"
	"devhub/internal/models"
	"devhub/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method  string
	Path    string
	Query   string
	Headers http.Header
	Body    string
}

type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.requests = append(rec.requests, recordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.RawQuery,
		Headers: r.Header.Clone(),
		Body:    string(body),
	})
	status, respBody := rec.status, rec.body
	rec.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, respBody)
}

func (rec *recorder) last(t *testing.T) recordedRequest {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.requests)
	return rec.requests[len(rec.requests)-1]
}

func setupClient(t *testing.T, rec *recorder) (*api.API, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	sess := session.New(session.NewMemoryStorage())
	client := api.NewClient(srv.URL+"/api/", 5*time.Second, sess, zerolog.Nop())
	return api.New(client), sess
}

func TestDoHeaders(t *testing.T) {
	ctx := context.Background()

	t.Run("no bearer without token", func(t *testing.T) {
		rec := &recorder{body: `[]`}
		a, _ := setupClient(t, rec)

		require.NoError(t, a.Client.Do(ctx, "/developers", api.RequestOptions{}, nil))
		got := rec.last(t)
		require.Equal(t, "/api/developers", got.Path)
		require.Empty(t, got.Headers.Get("Authorization"))
		require.Equal(t, "application/json", got.Headers.Get("Content-Type"))
	})

	t.Run("bearer with token", func(t *testing.T) {
		rec := &recorder{body: `{}`}
		a, sess := setupClient(t, rec)
		require.NoError(t, sess.SetToken(ctx, "abc"))

		require.NoError(t, a.Client.Do(ctx, "/auth/me", api.RequestOptions{}, nil))
		require.Equal(t, "Bearer abc", rec.last(t).Headers.Get("Authorization"))
	})

	t.Run("caller headers override", func(t *testing.T) {
		rec := &recorder{body: `{}`}
		a, sess := setupClient(t, rec)
		require.NoError(t, sess.SetToken(ctx, "abc"))

		opts := api.RequestOptions{Headers: map[string]string{
			"Content-Type":  "text/plain",
			"Authorization": "Bearer other",
		}}
		require.NoError(t, a.Client.Do(ctx, "/x", opts, nil))
		got := rec.last(t)
		require.Equal(t, "text/plain", got.Headers.Get("Content-Type"))
		require.Equal(t, "Bearer other", got.Headers.Get("Authorization"))
	})
}

func TestDoErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error field", http.StatusBadRequest, `{"error":"Email already exists"}`, "Email already exists"},
		{"message fallback", http.StatusNotFound, `{"message":"Job not found"}`, "Job not found"},
		{"unparseable body", http.StatusInternalServerError, `<html>oops</html>`, api.DefaultErrorMessage},
		{"empty body", http.StatusBadGateway, ``, api.DefaultErrorMessage},
		{"non-string error", http.StatusBadRequest, `{"error":{"code":1}}`, api.DefaultErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := setupClient(t, &recorder{status: tt.status, body: tt.body})

			err := a.Client.Do(ctx, "/x", api.RequestOptions{}, nil)
			require.Error(t, err)
			require.ErrorIs(t, err, api.ErrRequestFailed)
			require.Equal(t, tt.message, err.Error())
			require.Equal(t, tt.status, api.StatusOf(err))
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client := api.NewClient(url, time.Second, session.New(session.NewMemoryStorage()), zerolog.Nop())
		err := client.Do(ctx, "/x", api.RequestOptions{}, nil)
		require.ErrorIs(t, err, api.ErrRequestFailed)
		require.Equal(t, api.DefaultErrorMessage, err.Error())
		require.Zero(t, api.StatusOf(err))

		var apiErr *api.Error
		require.True(t, errors.As(err, &apiErr))
		require.NotNil(t, apiErr.Err)
	})
}

func TestDoDecodes(t *testing.T) {
	ctx := context.Background()
	a, _ := setupClient(t, &recorder{body: `{"activeProjects":3,"totalSpent":"120.50"}`})

	var stats models.ClientStats
	require.NoError(t, a.Client.Do(ctx, "/stats/client/1", api.RequestOptions{}, &stats))
	require.Equal(t, 3, stats.ActiveProjects)
	require.InDelta(t, 120.5, stats.TotalSpent.Float64(), 0.001)
}

func TestDoEmptySuccessBody(t *testing.T) {
	a, _ := setupClient(t, &recorder{status: http.StatusNoContent})

	var out map[string]any
	require.NoError(t, a.Client.Do(context.Background(), "/x", api.RequestOptions{Method: http.MethodDelete}, &out))
	require.Nil(t, out)
}

func TestFiltersEncode(t *testing.T) {
	f := api.Filters{"skill": "go", "location": "", "rating": "4"}
	require.Equal(t, "rating=4&skill=go", f.Encode())
	require.Empty(t, api.Filters{"search": ""}.Encode())
}

func TestLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{body: `{"token":"jwt-1","user":{"id":4,"fullName":"Grace Hopper","email":"grace@example.com","userType":"Client"}}`}
	a, sess := setupClient(t, rec)

	resp, err := a.Auth.Login(ctx, "grace@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "jwt-1", resp.Token)

	got := rec.last(t)
	require.Equal(t, http.MethodPost, got.Method)
	require.Equal(t, "/api/auth/login", got.Path)
	require.JSONEq(t, `{"email":"grace@example.com","password":"secret1"}`, got.Body)

	require.True(t, a.Auth.IsAuthenticated(ctx))
	require.Equal(t, models.UserTypeClient, a.Auth.UserType(ctx))
	user, err := a.Auth.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "Grace Hopper", user.FullName)

	require.NoError(t, a.Auth.Logout(ctx))
	require.False(t, a.Auth.IsAuthenticated(ctx))
	require.False(t, sess.IsAuthenticated(ctx))
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	ctx := context.Background()
	a, _ := setupClient(t, &recorder{status: http.StatusUnauthorized, body: `{"error":"Invalid credentials"}`})

	_, err := a.Auth.Login(ctx, "x@example.com", "nope")
	require.EqualError(t, err, "Invalid credentials")
	require.False(t, a.Auth.IsAuthenticated(ctx))
}

func TestRegisterWithoutTokenDoesNotAuthenticate(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{status: http.StatusCreated, body: `{"message":"Check your inbox"}`}
	a, _ := setupClient(t, rec)

	resp, err := a.Auth.Register(ctx, map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	require.Equal(t, "Check your inbox", resp.Message)
	require.False(t, a.Auth.IsAuthenticated(ctx))
}

func TestListShapes(t *testing.T) {
	ctx := context.Background()
	for name, body := range map[string]string{
		"bare":    `[{"id":1,"full_name":"A"},{"id":2,"full_name":"B"}]`,
		"wrapped": `{"developers":[{"id":1,"full_name":"A"},{"id":2,"full_name":"B"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			a, _ := setupClient(t, &recorder{body: body})
			devs, err := a.Developers.List(ctx, api.Filters{"rating": "4", "limit": "3"})
			require.NoError(t, err)
			require.Len(t, devs, 2)
			require.Equal(t, "B", devs[1].FullName)
		})
	}
}

func TestGetDeveloperShapes(t *testing.T) {
	ctx := context.Background()
	for name, body := range map[string]string{
		"bare":    `{"id":9,"full_name":"Linus","reviews":[{"id":1,"rating":5}]}`,
		"wrapped": `{"developer":{"id":9,"full_name":"Linus","reviews":[{"id":1,"rating":5}]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{body: body}
			a, _ := setupClient(t, rec)
			dev, err := a.Developers.Get(ctx, 9)
			require.NoError(t, err)
			require.Equal(t, "/api/developers/9", rec.last(t).Path)
			require.Equal(t, "Linus", dev.FullName)
			require.Len(t, dev.Reviews, 1)
		})
	}
}

func TestResourcePaths(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func(a *api.API) error
		method string
		path   string
		query  string
		body   string
	}{
		{"search", func(a *api.API) error { _, err := a.Developers.Search(ctx, "react dev"); return err }, "GET", "/api/developers", "search=react+dev", ""},
		{"rating filter", func(a *api.API) error { _, err := a.Developers.FilterByRating(ctx, 4.5); return err }, "GET", "/api/developers", "rating=4.5", ""},
		{"projects by status", func(a *api.API) error { _, err := a.Projects.ByStatus(ctx, models.ProjectStatusInProgress); return err }, "GET", "/api/projects", "status=in-progress", ""},
		{"client projects", func(a *api.API) error { _, err := a.Projects.ForClient(ctx, 3); return err }, "GET", "/api/projects", "clientId=3", ""},
		{"developer reviews", func(a *api.API) error { _, err := a.Reviews.ForDeveloper(ctx, 5); return err }, "GET", "/api/reviews/developer/5", "", ""},
		{"send message", func(a *api.API) error { return a.Messages.Send(ctx, 8, "hi") }, "POST", "/api/messages", "", `{"receiverId":8,"message":"hi"}`},
		{"mark read", func(a *api.API) error { return a.Messages.MarkRead(ctx, 2) }, "PATCH", "/api/messages/2/read", "", ""},
		{"mark all read", func(a *api.API) error { return a.Messages.MarkAllRead(ctx, 8) }, "PATCH", "/api/messages/read-all/8", "", ""},
		{"conversation", func(a *api.API) error { _, err := a.Messages.Conversation(ctx, 8); return err }, "GET", "/api/messages", "conversationWith=8", ""},
		{"suspend user", func(a *api.API) error { return a.Admin.SetUserSuspended(ctx, 4, true) }, "PATCH", "/api/admin/users/4/suspend", "", `{"suspended":true}`},
		{"admin users no search", func(a *api.API) error { _, err := a.Admin.Users(ctx, ""); return err }, "GET", "/api/admin/users", "", ""},
		{"analytics", func(a *api.API) error { _, err := a.Admin.Analytics(ctx, 0); return err }, "GET", "/api/admin/analytics", "period=30", ""},
		{"apply job", func(a *api.API) error { return a.Jobs.Apply(ctx, 1, 6) }, "POST", "/api/jobs/1/apply", "", `{"developer_id":6}`},
		{"update profile", func(a *api.API) error { return a.Profile.Update(ctx, models.ProfileUpdate{Phone: "555"}) }, "PUT", "/api/profile", "", `{"phone":"555"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{body: `{}`}
			a, _ := setupClient(t, rec)
			require.NoError(t, tt.call(a))

			got := rec.last(t)
			require.Equal(t, tt.method, got.Method)
			require.Equal(t, tt.path, got.Path)
			require.Equal(t, tt.query, got.Query)
			if tt.body != "" {
				require.JSONEq(t, tt.body, got.Body)
			}
		})
	}
}

func TestMeAcceptsWrappedUser(t *testing.T) {
	a, _ := setupClient(t, &recorder{body: `{"user":{"id":1,"fullName":"Root","role":"admin"}}`})
	user, err := a.Auth.Me(context.Background())
	require.NoError(t, err)
	require.True(t, user.IsAdmin())

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"fullName":"Root"`)
}
