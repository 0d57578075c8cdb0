package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/feature/contact"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

var _ domain.ContactRepository = (*ContactRepo)(nil)

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	m := contact.FromDomain(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*c = *m.ToDomain()
	return nil
}

func (r *ContactRepo) List(ctx context.Context, status domain.ContactStatus) ([]domain.Contact, error) {
	tx := r.db.WithContext(ctx).Model(&contact.ContactModel{})
	if status != "" {
		tx = tx.Where("status = ?", string(status))
	}
	var rows []contact.ContactModel
	if err := tx.Order("created_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	var m contact.ContactModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *ContactRepo) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("Contact")
	}
	if err := r.db.WithContext(ctx).Model(&contact.ContactModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&contact.ContactModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Contact")
	}
	return nil
}
