package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/feature/portfolio"
)

type PortfolioRepo struct{ db *gorm.DB }

func NewPortfolioRepo(db *gorm.DB) *PortfolioRepo { return &PortfolioRepo{db: db} }

var _ domain.PortfolioRepository = (*PortfolioRepo)(nil)

func (r *PortfolioRepo) Get(ctx context.Context) (*domain.Portfolio, error) {
	var m portfolio.PortfolioModel
	err := r.db.WithContext(ctx).Where("id = ?", portfolio.SingletonID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *PortfolioRepo) Create(ctx context.Context, p *domain.Portfolio) (bool, error) {
	m := portfolio.FromDomain(p)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Save upserts the whole aggregate; created_at survives updates.
func (r *PortfolioRepo) Save(ctx context.Context, p *domain.Portfolio) error {
	m := portfolio.FromDomain(p)
	m.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"personal_info", "skills", "projects", "experience", "education", "social_links", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	p.ID, p.CreatedAt, p.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}
