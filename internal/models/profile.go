package models

type Profile struct {
	Name       string   `json:"name,omitempty"`
	FullName   string   `json:"full_name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
	Role       string   `json:"role,omitempty"`
	ProfilePic string   `json:"profile_pic,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate Number   `json:"hourly_rate,omitempty"`
	Company    string   `json:"company,omitempty"`
	Budget     Number   `json:"budget,omitempty"`
}

func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.FullName != "" {
		return p.FullName
	}
	return "No Name"
}

type ProfileUpdate struct {
	FullName    string `json:"full_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	Skills      string `json:"skills,omitempty"`
	HourlyRate  string `json:"hourly_rate,omitempty"`
	Company     string `json:"company,omitempty"`
	Budget      string `json:"budget,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}
