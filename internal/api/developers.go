package api

import (
	"context"
	"net/http"
	"strconv"

	"devhub/internal/models"
)

type DeveloperService struct {
	c *Client
}

func (s *DeveloperService) List(ctx context.Context, filters Filters) ([]models.Developer, error) {
	return list[models.Developer](ctx, s.c, withQuery("/developers", filters), "developers")
}

func (s *DeveloperService) Get(ctx context.Context, id int64) (*models.Developer, error) {
	return one[models.Developer](ctx, s.c, developerPath(id), RequestOptions{}, "developer")
}

func (s *DeveloperService) Update(ctx context.Context, id int64, data any) (*models.Developer, error) {
	return one[models.Developer](ctx, s.c, developerPath(id), RequestOptions{Method: http.MethodPut, Body: data}, "developer")
}

func (s *DeveloperService) Delete(ctx context.Context, id int64) error {
	return s.c.Do(ctx, developerPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func (s *DeveloperService) Search(ctx context.Context, query string) ([]models.Developer, error) {
	return s.List(ctx, Filters{"search": query})
}

func (s *DeveloperService) FilterBySkill(ctx context.Context, skill string) ([]models.Developer, error) {
	return s.List(ctx, Filters{"skill": skill})
}

func (s *DeveloperService) FilterByLocation(ctx context.Context, location string) ([]models.Developer, error) {
	return s.List(ctx, Filters{"location": location})
}

func (s *DeveloperService) FilterByRating(ctx context.Context, minRating float64) ([]models.Developer, error) {
	return s.List(ctx, Filters{"rating": strconv.FormatFloat(minRating, 'f', -1, 64)})
}

func developerPath(id int64) string {
	return "/developers/" + strconv.FormatInt(id, 10)
}
