package api

import (
	"context"
	"net/http"
	"strconv"

	"devhub/internal/models"
)

type ReviewService struct {
	c *Client
}

func (s *ReviewService) ForDeveloper(ctx context.Context, developerID int64) ([]models.Review, error) {
	return list[models.Review](ctx, s.c, "/reviews/developer/"+strconv.FormatInt(developerID, 10), "reviews")
}

func (s *ReviewService) Add(ctx context.Context, req models.ReviewRequest) error {
	return s.c.Do(ctx, "/reviews", RequestOptions{Method: http.MethodPost, Body: req}, nil)
}

func (s *ReviewService) Update(ctx context.Context, id int64, data any) error {
	return s.c.Do(ctx, reviewPath(id), RequestOptions{Method: http.MethodPut, Body: data}, nil)
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.c.Do(ctx, reviewPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func reviewPath(id int64) string {
	return "/reviews/" + strconv.FormatInt(id, 10)
}
