package api

import (
	"context"
	"net/http"
	"strconv"

	"devhub/internal/models"
)

type JobService struct {
	c *Client
}

func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	return list[models.Job](ctx, s.c, "/jobs", "jobs")
}

func (s *JobService) Post(ctx context.Context, job models.JobRequest) error {
	return s.c.Do(ctx, "/jobs", RequestOptions{Method: http.MethodPost, Body: job}, nil)
}

func (s *JobService) Apply(ctx context.Context, jobID, developerID int64) error {
	return s.c.Do(ctx, jobPath(jobID)+"/apply", RequestOptions{Method: http.MethodPost, Body: developerBody(developerID)}, nil)
}

func (s *JobService) Assign(ctx context.Context, jobID, developerID int64) error {
	return s.c.Do(ctx, jobPath(jobID)+"/assign", RequestOptions{Method: http.MethodPost, Body: developerBody(developerID)}, nil)
}

func jobPath(id int64) string {
	return "/jobs/" + strconv.FormatInt(id, 10)
}

func developerBody(id int64) map[string]int64 {
	return map[string]int64{"developer_id": id}
}
