package models

type AdminDashboard struct {
	TotalUsers      int    `json:"totalUsers"`
	TotalProjects   int    `json:"totalProjects"`
	TotalRevenue    Number `json:"totalRevenue"`
	ActiveProjects  int    `json:"activeProjects"`
	TotalDevelopers int    `json:"totalDevelopers"`
	TotalClients    int    `json:"totalClients"`
	TotalReviews    int    `json:"totalReviews"`
	AvgRating       Number `json:"avgRating"`
}

type AdminUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	UserType  string `json:"user_type"`
	Suspended bool   `json:"is_suspended"`
	CreatedAt string `json:"created_at,omitempty"`
}

type TopDeveloper struct {
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	Rating        Number `json:"rating"`
	TotalReviews  int    `json:"total_reviews"`
	TotalProjects int    `json:"total_projects"`
}

type TopClient struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	TotalProjects int    `json:"total_projects"`
	TotalSpent    Number `json:"total_spent"`
}

type AdminAnalytics struct {
	TopDevelopers []TopDeveloper `json:"topDevelopers"`
	TopClients    []TopClient    `json:"topClients"`
}

// PlatformSettings is read in the backend's column naming and written back camelCased.
type PlatformSettings struct {
	PlatformFee      Number `json:"platform_fee"`
	MinProjectBudget Number `json:"min_project_budget"`
	MaxProjectBudget Number `json:"max_project_budget"`
}

type PlatformSettingsUpdate struct {
	PlatformFee      string `json:"platformFee"`
	MinProjectBudget string `json:"minProjectBudget"`
	MaxProjectBudget string `json:"maxProjectBudget"`
}
