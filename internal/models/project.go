package models

type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

type Project struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Budget      Number        `json:"budget"`
	Deadline    string        `json:"deadline,omitempty"`
	Status      ProjectStatus `json:"status"`
	ClientID    int64         `json:"client_id,omitempty"`
	DeveloperID int64         `json:"developer_id,omitempty"`
	CreatedAt   string        `json:"created_at,omitempty"`
}

type ProjectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	Deadline    string  `json:"deadline,omitempty"`
	DeveloperID int64   `json:"developerId,omitempty"`
}

type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Budget      Number `json:"budget"`
	Deadline    string `json:"deadline,omitempty"`
	ClientID    int64  `json:"client_id,omitempty"`
	DeveloperID int64  `json:"developer_id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type JobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Budget      string `json:"budget"`
	Deadline    string `json:"deadline,omitempty"`
	ClientID    int64  `json:"client_id"`
}
