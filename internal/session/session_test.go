package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"devhub/internal/models"
	"devhub/internal/session"

	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: 7, FullName: "Ada Lovelace", Email: "ada@example.com", UserType: models.UserTypeDeveloper}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := session.New(session.NewMemoryStorage())

	t.Run("empty session is unauthenticated", func(t *testing.T) {
		require.False(t, s.IsAuthenticated(ctx))
		user, err := s.CurrentUser(ctx)
		require.NoError(t, err)
		require.Nil(t, user)
		require.Empty(t, s.UserType(ctx))
	})

	t.Run("init stores token and user", func(t *testing.T) {
		require.NoError(t, s.Init(ctx, "tok-1", testUser()))
		require.True(t, s.IsAuthenticated(ctx))

		token, err := s.Token(ctx)
		require.NoError(t, err)
		require.Equal(t, "tok-1", token)

		user, err := s.CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, testUser(), user)
		require.Equal(t, models.UserTypeDeveloper, s.UserType(ctx))
	})

	t.Run("clear removes both", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		require.False(t, s.IsAuthenticated(ctx))
		user, err := s.CurrentUser(ctx)
		require.NoError(t, err)
		require.Nil(t, user)
	})
}

// failingStorage refuses writes to one key.
type failingStorage struct {
	*session.MemoryStorage
	failKey string
}

var errWriteRefused = errors.New("write refused")

func (f *failingStorage) SetItem(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errWriteRefused
	}
	return f.MemoryStorage.SetItem(ctx, key, value)
}

func TestInitFailureLeavesNoHalfSession(t *testing.T) {
	ctx := context.Background()

	t.Run("user write fails", func(t *testing.T) {
		s := session.New(&failingStorage{MemoryStorage: session.NewMemoryStorage(), failKey: session.UserKey})

		require.ErrorIs(t, s.Init(ctx, "tok-1", testUser()), errWriteRefused)
		require.False(t, s.IsAuthenticated(ctx))
	})

	t.Run("token write fails", func(t *testing.T) {
		s := session.New(&failingStorage{MemoryStorage: session.NewMemoryStorage(), failKey: session.TokenKey})

		require.ErrorIs(t, s.Init(ctx, "tok-1", testUser()), errWriteRefused)
		require.False(t, s.IsAuthenticated(ctx))
		user, err := s.CurrentUser(ctx)
		require.NoError(t, err)
		require.Nil(t, user)
	})

	t.Run("failed re-login drops the previous session", func(t *testing.T) {
		store := &failingStorage{MemoryStorage: session.NewMemoryStorage()}
		s := session.New(store)
		require.NoError(t, s.Init(ctx, "tok-old", testUser()))

		store.failKey = session.UserKey
		require.Error(t, s.Init(ctx, "tok-new", &models.User{ID: 8, UserType: models.UserTypeClient}))
		require.False(t, s.IsAuthenticated(ctx))
	})
}

func TestTokenAloneAuthenticates(t *testing.T) {
	ctx := context.Background()
	s := session.New(session.NewMemoryStorage())

	require.NoError(t, s.SetToken(ctx, "opaque"))
	require.True(t, s.IsAuthenticated(ctx))
	require.Empty(t, s.UserType(ctx))
}

func TestCorruptUserRecord(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStorage()
	require.NoError(t, store.SetItem(ctx, session.UserKey, "{not json"))

	_, err := session.New(store).CurrentUser(ctx)
	require.Error(t, err)
}

func TestNamespacedStorage(t *testing.T) {
	ctx := context.Background()
	shared := session.NewMemoryStorage()
	a := session.New(session.Namespaced(shared, "browser-a"))
	b := session.New(session.Namespaced(shared, "browser-b"))

	require.NoError(t, a.SetToken(ctx, "token-a"))
	require.True(t, a.IsAuthenticated(ctx))
	require.False(t, b.IsAuthenticated(ctx))

	raw, ok, err := shared.GetItem(ctx, "browser-a:"+session.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token-a", raw)
}

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := session.New(session.NewFileStorage(path))
	require.NoError(t, s.Init(ctx, "file-token", testUser()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	t.Run("survives reopen", func(t *testing.T) {
		reopened := session.New(session.NewFileStorage(path))
		require.True(t, reopened.IsAuthenticated(ctx))
		user, err := reopened.CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("clear persists", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		reopened := session.New(session.NewFileStorage(path))
		require.False(t, reopened.IsAuthenticated(ctx))
	})
}

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("set REDIS_ADDR to run against a live redis")
	}

	ctx := context.Background()
	rdb, err := session.NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	defer rdb.Close()

	s := session.New(session.Namespaced(session.NewRedisStorage(rdb), "test-"+t.Name()))
	require.NoError(t, s.Init(ctx, "redis-token", testUser()))
	require.True(t, s.IsAuthenticated(ctx))
	require.NoError(t, s.Clear(ctx))
	require.False(t, s.IsAuthenticated(ctx))
}

func TestCheckAuth(t *testing.T) {
	ctx := context.Background()
	anonymous := session.New(session.NewMemoryStorage())
	signedIn := session.New(session.NewMemoryStorage())
	require.NoError(t, signedIn.SetToken(ctx, "t"))

	tests := []struct {
		name     string
		s        *session.Session
		page     string
		redirect string
		allowed  bool
	}{
		{"public index", anonymous, "/index.html", "", true},
		{"public login", anonymous, "login.html", "", true},
		{"public register", anonymous, "/app/register.html", "", true},
		{"root", anonymous, "/", "", true},
		{"protected without token", anonymous, "/client-dashboard.html", session.PageIndex, false},
		{"protected with token", signedIn, "/client-dashboard.html", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, allowed := session.CheckAuth(ctx, tt.s, tt.page)
			require.Equal(t, tt.redirect, redirect)
			require.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestDashboardPage(t *testing.T) {
	require.Equal(t, session.PageDeveloperDashboard, session.DashboardPage(&models.User{UserType: models.UserTypeDeveloper}))
	require.Equal(t, session.PageClientDashboard, session.DashboardPage(&models.User{UserType: models.UserTypeClient}))
	require.Equal(t, session.PageAdminDashboard, session.DashboardPage(&models.User{UserType: models.UserTypeClient, Role: models.RoleAdmin}))
	require.Empty(t, session.DashboardPage(&models.User{UserType: "Guest"}))
	require.Empty(t, session.DashboardPage(nil))
}
