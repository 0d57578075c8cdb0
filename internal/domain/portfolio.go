package domain

import (
	"context"
	"time"
)

type PersonalInfo struct {
	Name         string `json:"name" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Bio          string `json:"bio" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Resume       string `json:"resume,omitempty"`
}

type SocialLinks struct {
	Github    string `json:"github,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Level    int    `json:"level" validate:"required,min=1,max=100"`
	Category string `json:"category" validate:"required,oneof=Frontend Backend Database Tools AI/ML Other"`
}

type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies"`
	Image        string   `json:"image,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	Featured     bool     `json:"featured"`
}

type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company" validate:"required"`
	Position     string   `json:"position" validate:"required"`
	StartDate    Date     `json:"startDate" validate:"required"`
	EndDate      *Date    `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree" validate:"required"`
	Field       string `json:"field" validate:"required"`
	StartDate   Date   `json:"startDate" validate:"required"`
	EndDate     *Date  `json:"endDate"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// Portfolio is the single content document served to visitors.
type Portfolio struct {
	ID           string       `json:"id,omitempty"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Skills       []Skill      `json:"skills" validate:"dive"`
	Projects     []Project    `json:"projects" validate:"dive"`
	Experience   []Experience `json:"experience" validate:"dive"`
	Education    []Education  `json:"education" validate:"dive"`
	SocialLinks  SocialLinks  `json:"socialLinks"`
	CreatedAt    time.Time    `json:"createdAt,omitzero"`
	UpdatedAt    time.Time    `json:"updatedAt,omitzero"`
}

// EnsureItemIDs assigns ids to embedded items that have none or share one with an earlier item.
func (p *Portfolio) EnsureItemIDs(newID func() string) {
	ensureIDs(p.Skills, newID)
	ensureIDs(p.Projects, newID)
	ensureIDs(p.Experience, newID)
	ensureIDs(p.Education, newID)
}

// Clear empties one embedded collection.
func (p *Portfolio) Clear(c Collection) {
	switch c {
	case CollectionSkills:
		p.Skills = []Skill{}
	case CollectionProjects:
		p.Projects = []Project{}
	case CollectionExperience:
		p.Experience = []Experience{}
	case CollectionEducation:
		p.Education = []Education{}
	}
}

// PortfolioRepository stores the singleton. Get returns (nil, nil) when it does not exist yet.
type PortfolioRepository interface {
	Get(ctx context.Context) (*Portfolio, error)
	// Create inserts p unless a portfolio already exists and reports whether it did.
	Create(ctx context.Context, p *Portfolio) (bool, error)
	Save(ctx context.Context, p *Portfolio) error
}
