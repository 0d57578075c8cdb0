package domain

import (
	"context"
	"time"
)

type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied, ContactArchived:
		return true
	}
	return false
}

type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	IPAddress string        `json:"ipAddress,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type ContactRepository interface {
	Create(ctx context.Context, c *Contact) error
	// List returns contacts newest first; an empty status matches all.
	List(ctx context.Context, status ContactStatus) ([]Contact, error)
	FindByID(ctx context.Context, id string) (*Contact, error)
	UpdateStatus(ctx context.Context, id string, status ContactStatus) (*Contact, error)
	Delete(ctx context.Context, id string) error
}
