package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/pkg/utils"
)

type ContactService struct {
	repo     domain.ContactRepository
	notifier Notifier
	log      *zap.Logger
}

func NewContactService(repo domain.ContactRepository, notifier Notifier, log *zap.Logger) *ContactService {
	return &ContactService{repo: repo, notifier: notifier, log: log}
}

type SubmitInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=1000"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// Submit stores the message, then notifies the owner. Notification problems are logged only.
func (s *ContactService) Submit(ctx context.Context, in SubmitInput) (*domain.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := check(in, "invalid contact message"); err != nil {
		return nil, err
	}

	c := &domain.Contact{
		ID:        utils.NewID(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    domain.ContactNew,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		res := s.notifier.Notify(context.WithoutCancel(ctx), c)
		switch res.Status {
		case NotifySent:
			s.log.Info("contact notification sent", zap.String("contact_id", c.ID))
		case NotifyNotConfigured:
			s.log.Warn("contact notification skipped: email not configured", zap.String("contact_id", c.ID))
		default:
			s.log.Error("contact notification failed", zap.String("contact_id", c.ID), zap.Error(res.Err))
		}
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context, status string) ([]domain.Contact, error) {
	st := domain.ContactStatus(status)
	if st != "" && !st.Valid() {
		return nil, invalidStatus()
	}
	return s.repo.List(ctx, st)
}

func (s *ContactService) SetStatus(ctx context.Context, id, status string) (*domain.Contact, error) {
	st := domain.ContactStatus(status)
	if !st.Valid() {
		return nil, invalidStatus()
	}
	return s.repo.UpdateStatus(ctx, id, st)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ContactService) TestEmail(ctx context.Context) error {
	if s.notifier == nil {
		return ErrMailNotConfigured
	}
	return s.notifier.TestConfiguration(ctx)
}

func invalidStatus() error {
	return domain.Invalid("invalid status", map[string]string{
		"status": "must be one of: new, read, replied, archived",
	})
}
