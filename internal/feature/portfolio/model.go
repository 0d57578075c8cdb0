package portfolio

import (
	"time"

	"go-gin-portfolio/internal/domain"
)

// SingletonID is the primary key of the only portfolio row.
const SingletonID = "main"

// PortfolioModel keeps embedded collections as JSON columns so the aggregate is read and
// written as one row.
type PortfolioModel struct {
	ID           string              `gorm:"primaryKey;type:varchar(32)"`
	PersonalInfo domain.PersonalInfo `gorm:"serializer:json;type:text"`
	Skills       []domain.Skill      `gorm:"serializer:json;type:text"`
	Projects     []domain.Project    `gorm:"serializer:json;type:text"`
	Experience   []domain.Experience `gorm:"serializer:json;type:text"`
	Education    []domain.Education  `gorm:"serializer:json;type:text"`
	SocialLinks  domain.SocialLinks  `gorm:"serializer:json;type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PortfolioModel) TableName() string { return "portfolios" }

func FromDomain(p *domain.Portfolio) *PortfolioModel {
	return &PortfolioModel{
		ID:           SingletonID,
		PersonalInfo: p.PersonalInfo,
		Skills:       nonNil(p.Skills),
		Projects:     nonNil(p.Projects),
		Experience:   nonNil(p.Experience),
		Education:    nonNil(p.Education),
		SocialLinks:  p.SocialLinks,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *PortfolioModel) ToDomain() *domain.Portfolio {
	return &domain.Portfolio{
		ID:           m.ID,
		PersonalInfo: m.PersonalInfo,
		Skills:       nonNil(m.Skills),
		Projects:     nonNil(m.Projects),
		Experience:   nonNil(m.Experience),
		Education:    nonNil(m.Education),
		SocialLinks:  m.SocialLinks,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
