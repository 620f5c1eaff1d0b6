package api

import (
	"context"
	"strconv"

	"devhub/internal/models"
)

type StatsService struct {
	c *Client
}

func (s *StatsService) Client(ctx context.Context, clientID int64) (*models.ClientStats, error) {
	var out models.ClientStats
	if err := s.c.Do(ctx, "/stats/client/"+strconv.FormatInt(clientID, 10), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *StatsService) Developer(ctx context.Context, developerID int64) (*models.DeveloperStats, error) {
	var out models.DeveloperStats
	if err := s.c.Do(ctx, "/stats/developer/"+strconv.FormatInt(developerID, 10), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *StatsService) Platform(ctx context.Context) (*models.PlatformStats, error) {
	var out models.PlatformStats
	if err := s.c.Do(ctx, "/stats/platform", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
