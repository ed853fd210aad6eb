package portfolio

import "time"

// Profile is the singleton owner record.
type Profile struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Bio         string  `json:"bio"`
	ImageURL    *string `json:"imageUrl"`
	Email       string  `json:"email"`
	LinkedinURL *string `json:"linkedinUrl"`
	GithubURL   *string `json:"githubUrl"`
	ResumeURL   *string `json:"resumeUrl"`
}

// Experience.Description holds newline-delimited bullet text.
type Experience struct {
	ID          int64   `json:"id"`
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description"`
}

type Education struct {
	ID        int64   `json:"id"`
	School    string  `json:"school"`
	Degree    string  `json:"degree"`
	Field     string  `json:"field"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type Project struct {
	ID          int64    `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Link        *string  `json:"link"`
	GithubLink  *string  `json:"githubLink"`
	Tags        []string `json:"tags"`
}

type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency *int   `json:"proficiency"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
