package api

import (
	"context"
	"net/http"
	"strconv"

	"devhub/internal/models"
)

// AdminService wraps the /admin endpoints. The backend enforces the role.
type AdminService struct {
	c *Client
}

func (s *AdminService) Dashboard(ctx context.Context) (*models.AdminDashboard, error) {
	var out models.AdminDashboard
	if err := s.c.Do(ctx, "/admin/dashboard", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) Users(ctx context.Context, search string) ([]models.AdminUser, error) {
	return list[models.AdminUser](ctx, s.c, withQuery("/admin/users", Filters{"search": search}), "users")
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	return s.c.Do(ctx, adminUserPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func (s *AdminService) SetUserSuspended(ctx context.Context, id int64, suspended bool) error {
	body := map[string]bool{"suspended": suspended}
	return s.c.Do(ctx, adminUserPath(id)+"/suspend", RequestOptions{Method: http.MethodPatch, Body: body}, nil)
}

func (s *AdminService) Projects(ctx context.Context, search string) ([]models.Project, error) {
	return list[models.Project](ctx, s.c, withQuery("/admin/projects", Filters{"search": search}), "projects")
}

func (s *AdminService) DeleteProject(ctx context.Context, id int64) error {
	return s.c.Do(ctx, "/admin/projects/"+strconv.FormatInt(id, 10), RequestOptions{Method: http.MethodDelete}, nil)
}

func (s *AdminService) Reviews(ctx context.Context) ([]models.Review, error) {
	return list[models.Review](ctx, s.c, "/admin/reviews", "reviews")
}

func (s *AdminService) DeleteReview(ctx context.Context, id int64) error {
	return s.c.Do(ctx, "/admin/reviews/"+strconv.FormatInt(id, 10), RequestOptions{Method: http.MethodDelete}, nil)
}

func (s *AdminService) Analytics(ctx context.Context, periodDays int) (*models.AdminAnalytics, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	var out models.AdminAnalytics
	path := withQuery("/admin/analytics", Filters{"period": strconv.Itoa(periodDays)})
	if err := s.c.Do(ctx, path, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) Settings(ctx context.Context) (*models.PlatformSettings, error) {
	var out models.PlatformSettings
	if err := s.c.Do(ctx, "/admin/settings", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) UpdateSettings(ctx context.Context, update models.PlatformSettingsUpdate) error {
	return s.c.Do(ctx, "/admin/settings", RequestOptions{Method: http.MethodPut, Body: update}, nil)
}

func adminUserPath(id int64) string {
	return "/admin/users/" + strconv.FormatInt(id, 10)
}
