package api

import (
	"context"
	"net/http"
	"strconv"

	"devhub/internal/models"
)

type ProjectService struct {
	c *Client
}

func (s *ProjectService) List(ctx context.Context, filters Filters) ([]models.Project, error) {
	return list[models.Project](ctx, s.c, withQuery("/projects", filters), "projects")
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return one[models.Project](ctx, s.c, projectPath(id), RequestOptions{}, "project")
}

func (s *ProjectService) Create(ctx context.Context, req models.ProjectRequest) (*models.Project, error) {
	return one[models.Project](ctx, s.c, "/projects", RequestOptions{Method: http.MethodPost, Body: req}, "project")
}

func (s *ProjectService) Update(ctx context.Context, id int64, data any) (*models.Project, error) {
	return one[models.Project](ctx, s.c, projectPath(id), RequestOptions{Method: http.MethodPut, Body: data}, "project")
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.c.Do(ctx, projectPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func (s *ProjectService) ByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	return s.List(ctx, Filters{"status": string(status)})
}

func (s *ProjectService) ForClient(ctx context.Context, clientID int64) ([]models.Project, error) {
	return s.List(ctx, Filters{"clientId": strconv.FormatInt(clientID, 10)})
}

func (s *ProjectService) ForDeveloper(ctx context.Context, developerID int64) ([]models.Project, error) {
	return s.List(ctx, Filters{"developerId": strconv.FormatInt(developerID, 10)})
}

func projectPath(id int64) string {
	return "/projects/" + strconv.FormatInt(id, 10)
}
