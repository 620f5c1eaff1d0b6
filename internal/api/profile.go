package api

import (
	"context"
	"net/http"

	"devhub/internal/models"
)

type ProfileService struct {
	c *Client
}

func (s *ProfileService) Get(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := s.c.Do(ctx, "/profile", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProfileService) Update(ctx context.Context, update models.ProfileUpdate) error {
	return s.c.Do(ctx, "/profile", RequestOptions{Method: http.MethodPut, Body: update}, nil)
}
