package models

type ClientStats struct {
	ActiveProjects  int    `json:"activeProjects"`
	TotalSpent      Number `json:"totalSpent"`
	DevelopersHired int    `json:"developersHired"`
	AvgRating       Number `json:"avgRating"`
}

type DeveloperStats struct {
	ActiveProjects int    `json:"activeProjects"`
	TotalEarnings  Number `json:"totalEarnings"`
	Rating         Number `json:"rating"`
	TotalClients   int    `json:"totalClients"`
}

type PlatformStats struct {
	TotalDevelopers int `json:"totalDevelopers"`
	TotalClients    int `json:"totalClients"`
	TotalProjects   int `json:"totalProjects"`
	CompletedJobs   int `json:"completedProjects"`
}
