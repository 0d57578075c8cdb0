package domain

// DefaultPortfolio returns the placeholder content served before an admin saves anything.
// Items carry no ids until the template is persisted.
func DefaultPortfolio() *Portfolio {
	return &Portfolio{
		PersonalInfo: PersonalInfo{
			Name:     "Your Name",
			Title:    "Your Professional Title",
			Bio:      "Your professional bio. Tell visitors about your skills, experience and what makes you unique.",
			Email:    "you@example.com",
			Phone:    "+1234567890",
			Location: "Your City, Country",
		},
		Skills: []Skill{
			{Name: "JavaScript", Level: 80, Category: "Frontend"},
			{Name: "React", Level: 75, Category: "Frontend"},
			{Name: "Go", Level: 70, Category: "Backend"},
			{Name: "Node.js", Level: 60, Category: "Backend"},
			{Name: "PostgreSQL", Level: 65, Category: "Database"},
			{Name: "Machine Learning", Level: 50, Category: "AI/ML"},
			{Name: "Git", Level: 75, Category: "Tools"},
		},
		Projects: []Project{
			{
				Title:        "Portfolio Website",
				Description:  "A personal site with an admin dashboard for managing content, uploads and contact messages.",
				Technologies: []string{"React", "Go", "PostgreSQL"},
				LiveURL:      "https://example.com",
				GithubURL:    "https://github.com/example/portfolio",
				Featured:     true,
			},
			{
				Title:        "Task Manager",
				Description:  "A small task tracker with projects, labels and due dates.",
				Technologies: []string{"HTML", "CSS", "JavaScript"},
			},
		},
		Experience: []Experience{
			{
				Company:      "Example Corp",
				Position:     "Software Engineer",
				StartDate:    NewDate(2023, 1, 1),
				Current:      true,
				Description:  "Building and maintaining web applications and internal tooling.",
				Technologies: []string{"Go", "React", "PostgreSQL"},
			},
		},
		Education: []Education{
			{
				Institution: "Example University",
				Degree:      "Bachelor of Science",
				Field:       "Computer Science",
				StartDate:   NewDate(2018, 9, 1),
				EndDate:     datePtr(NewDate(2022, 6, 30)),
			},
		},
		SocialLinks: SocialLinks{
			Github:   "https://github.com/example",
			Linkedin: "https://linkedin.com/in/example",
		},
	}
}

func datePtr(d Date) *Date { return &d }
