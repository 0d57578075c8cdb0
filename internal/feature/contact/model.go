package contact

import (
	"time"

	"go-gin-portfolio/internal/domain"
)

type ContactModel struct {
	ID        string `gorm:"primaryKey;type:varchar(32)"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;index"`
	Subject   string `gorm:"size:200;not null"`
	Message   string `gorm:"size:1000;not null"`
	Status    string `gorm:"size:16;not null;index"`
	IPAddress string `gorm:"size:64"`
	UserAgent string `gorm:"size:512"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ContactModel) TableName() string { return "contacts" }

func FromDomain(c *domain.Contact) *ContactModel {
	return &ContactModel{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    string(c.Status),
		IPAddress: c.IPAddress,
		UserAgent: c.UserAgent,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ContactModel) ToDomain() *domain.Contact {
	return &domain.Contact{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    domain.ContactStatus(m.Status),
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
