package models

import "strings"

type Developer struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"user_id"`
	FullName        string   `json:"full_name"`
	Username        string   `json:"username,omitempty"`
	Email           string   `json:"email,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Skills          string   `json:"skills,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	YearsExperience Number   `json:"years_experience"`
	HourlyRate      Number   `json:"hourly_rate"`
	Location        string   `json:"location,omitempty"`
	PortfolioURL    string   `json:"portfolio_url,omitempty"`
	Rating          Number   `json:"rating"`
	TotalReviews    int      `json:"total_reviews"`
	Reviews         []Review `json:"reviews,omitempty"`
}

// SkillList splits the comma separated skills column, keeping at most limit entries (0 keeps all).
func (d Developer) SkillList(limit int) []string {
	var out []string
	for _, s := range strings.Split(d.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

type Review struct {
	ID           int64  `json:"id"`
	DeveloperID  int64  `json:"developerId,omitempty"`
	ClientID     int64  `json:"client_id,omitempty"`
	ReviewerName string `json:"reviewer_name,omitempty"`
	Rating       int    `json:"rating"`
	Message      string `json:"message,omitempty"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type ReviewRequest struct {
	DeveloperID int64  `json:"developerId"`
	Rating      int    `json:"rating"`
	Message     string `json:"message"`
}
