package dashboard

import (
	"context"
	"errors"
	"sync"

	"devhub/internal/api"
	"devhub/internal/models"

	"github.com/rs/zerolog"
)

const (
	recentProjects      = 5
	recentConversations = 3
	recommendedLimit    = "3"
	recommendedRating   = "4"
	developerScanLimit  = "1000"
)

var (
	ErrNotSignedIn = errors.New("not signed in")

	ErrClientOnly    = errors.New("Access denied. Client account required.")
	ErrDeveloperOnly = errors.New("Access denied. Developer account required.")
	ErrAdminOnly     = errors.New("Access denied. Admin privileges required.")
)

type ClientView struct {
	User          *models.User          `json:"user"`
	Stats         *models.ClientStats   `json:"stats,omitempty"`
	Projects      []models.Project      `json:"projects"`
	Conversations []models.Conversation `json:"conversations"`
	Recommended   []models.Developer    `json:"recommendedDevelopers"`
	Errors        map[string]string     `json:"errors,omitempty"`
}

type DeveloperView struct {
	User          *models.User           `json:"user"`
	Developer     *models.Developer      `json:"developer,omitempty"`
	Stats         *models.DeveloperStats `json:"stats,omitempty"`
	Projects      []models.Project       `json:"projects"`
	Conversations []models.Conversation  `json:"conversations"`
	Errors        map[string]string      `json:"errors,omitempty"`
}

type AdminView struct {
	User     *models.User           `json:"user"`
	Counters *models.AdminDashboard `json:"counters,omitempty"`
	Errors   map[string]string      `json:"errors,omitempty"`
}

// Loader assembles dashboard views. Every section is fetched on its own; a
// failed section is recorded in the view's Errors and the rest still load.
type Loader struct {
	api    *api.API
	logger zerolog.Logger
}

func NewLoader(a *api.API, logger zerolog.Logger) *Loader {
	return &Loader{api: a, logger: logger}
}

// sections runs loaders concurrently and collects their failures by name.
type sections struct {
	wg     sync.WaitGroup
	mu     sync.Mutex
	errs   map[string]string
	logger zerolog.Logger
}

func (s *sections) run(ctx context.Context, name string, fn func(context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(ctx); err != nil {
			s.fail(name, err)
		}
	}()
}

func (s *sections) fail(name string, err error) {
	s.logger.Warn().Err(err).Str("section", name).Msg("Dashboard section failed")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errs == nil {
		s.errs = make(map[string]string)
	}
	s.errs[name] = err.Error()
}

func (s *sections) wait() map[string]string {
	s.wg.Wait()
	return s.errs
}

func (l *Loader) currentUser(ctx context.Context) (*models.User, error) {
	user, err := l.api.Auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || !l.api.Auth.IsAuthenticated(ctx) {
		return nil, ErrNotSignedIn
	}
	return user, nil
}

// Client loads the client dashboard. The role check only decides what to
// show; the backend is what enforces access.
func (l *Loader) Client(ctx context.Context) (*ClientView, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeClient {
		return nil, ErrClientOnly
	}

	view := &ClientView{User: user}
	s := &sections{logger: l.logger}
	s.run(ctx, "stats", func(ctx context.Context) error {
		stats, err := l.api.Stats.Client(ctx, user.ID)
		view.Stats = stats
		return err
	})
	s.run(ctx, "projects", func(ctx context.Context) error {
		projects, err := l.api.Projects.ForClient(ctx, user.ID)
		view.Projects = head(projects, recentProjects)
		return err
	})
	s.run(ctx, "conversations", func(ctx context.Context) error {
		convs, err := l.api.Messages.Conversations(ctx)
		view.Conversations = head(convs, recentConversations)
		return err
	})
	s.run(ctx, "developers", func(ctx context.Context) error {
		devs, err := l.api.Developers.List(ctx, api.Filters{"rating": recommendedRating, "limit": recommendedLimit})
		view.Recommended = devs
		return err
	})
	view.Errors = s.wait()
	return view, nil
}

// Developer loads the developer dashboard. The developer record is found by
// scanning the directory for the signed in user's id.
func (l *Loader) Developer(ctx context.Context) (*DeveloperView, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeDeveloper {
		return nil, ErrDeveloperOnly
	}

	view := &DeveloperView{User: user}
	s := &sections{logger: l.logger}

	dev, err := l.findDeveloper(ctx, user.ID)
	if err != nil {
		s.fail("developer", err)
		view.Errors = s.wait()
		return view, nil
	}
	view.Developer = dev

	s.run(ctx, "stats", func(ctx context.Context) error {
		stats, err := l.api.Stats.Developer(ctx, dev.ID)
		view.Stats = stats
		return err
	})
	s.run(ctx, "projects", func(ctx context.Context) error {
		projects, err := l.api.Projects.ForDeveloper(ctx, dev.ID)
		view.Projects = head(projects, recentProjects)
		return err
	})
	s.run(ctx, "conversations", func(ctx context.Context) error {
		convs, err := l.api.Messages.Conversations(ctx)
		view.Conversations = head(convs, recentConversations)
		return err
	})
	view.Errors = s.wait()
	return view, nil
}

var ErrDeveloperProfileNotFound = errors.New("Developer profile not found")

func (l *Loader) findDeveloper(ctx context.Context, userID int64) (*models.Developer, error) {
	devs, err := l.api.Developers.List(ctx, api.Filters{"limit": developerScanLimit})
	if err != nil {
		return nil, err
	}
	for i := range devs {
		if devs[i].UserID == userID {
			return &devs[i], nil
		}
	}
	return nil, ErrDeveloperProfileNotFound
}

// Admin loads the admin counters. Admin status comes from the role the
// backend put on the user record.
func (l *Loader) Admin(ctx context.Context) (*AdminView, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrAdminOnly
	}

	view := &AdminView{User: user}
	s := &sections{logger: l.logger}
	s.run(ctx, "counters", func(ctx context.Context) error {
		counters, err := l.api.Admin.Dashboard(ctx)
		view.Counters = counters
		return err
	})
	view.Errors = s.wait()
	return view, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
