package api

// API groups the resource method tables over one Client.
type API struct {
	Client     *Client
	Auth       *AuthService
	Developers *DeveloperService
	Projects   *ProjectService
	Reviews    *ReviewService
	Messages   *MessageService
	Stats      *StatsService
	Admin      *AdminService
	Jobs       *JobService
	Profile    *ProfileService
}

func New(c *Client) *API {
	return &API{
		Client:     c,
		Auth:       &AuthService{c: c},
		Developers: &DeveloperService{c: c},
		Projects:   &ProjectService{c: c},
		Reviews:    &ReviewService{c: c},
		Messages:   &MessageService{c: c},
		Stats:      &StatsService{c: c},
		Admin:      &AdminService{c: c},
		Jobs:       &JobService{c: c},
		Profile:    &ProfileService{c: c},
	}
}
