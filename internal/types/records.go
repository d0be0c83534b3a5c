package types

// Category is one league or cup entry collected by the categories stage.
// Immutable once written to the stage output file.
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Team is one team found under a category, collected by the teams stage.
// CategoryURL always refers to the URL of a category from the prior stage.
type Team struct {
	CategoryURL string `json:"category_url"`
	TeamName    string `json:"team_name"`
	TeamURL     string `json:"team_url"`
}

// Official is one row of a team's officials table, as extracted from the
// players page before any role filtering.
type Official struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Contact is one administrator row in the final output. TeamName holds a
// comma-joined list when the same administrator manages several teams.
type Contact struct {
	TeamName          string `json:"team_name"`
	AdministratorName string `json:"administrator_name"`
	ContactInfo       string `json:"contact_info"`
}
