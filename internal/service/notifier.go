package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-gin-portfolio/internal/core/mail"
	"go-gin-portfolio/internal/domain"
)

type NotifyStatus string

const (
	NotifySent          NotifyStatus = "sent"
	NotifyNotConfigured NotifyStatus = "not_configured"
	NotifyFailed        NotifyStatus = "failed"
)

// NotifyResult is informational; a failed notification never fails the request that caused it.
type NotifyResult struct {
	Status NotifyStatus
	Err    error
}

// ErrMailNotConfigured is returned by TestConfiguration when no transport is set up.
var ErrMailNotConfigured = errors.New("email is not configured")

type Notifier interface {
	Notify(ctx context.Context, c *domain.Contact) NotifyResult
	TestConfiguration(ctx context.Context) error
}

type MailNotifier struct {
	mailer  mail.Mailer
	to      string
	timeout time.Duration
	log     *zap.Logger
	sent    *prometheus.CounterVec
}

// NewMailNotifier sends to "to". reg may be nil.
func NewMailNotifier(m mail.Mailer, to string, log *zap.Logger, reg prometheus.Registerer) *MailNotifier {
	n := &MailNotifier{
		mailer:  m,
		to:      to,
		timeout: 10 * time.Second,
		log:     log,
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_notifications_total",
			Help: "Contact notifications by outcome",
		}, []string{"status"}),
	}
	if reg != nil {
		if err := reg.Register(n.sent); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				n.sent = are.ExistingCollector.(*prometheus.CounterVec)
			}
		}
	}
	return n
}

func (n *MailNotifier) configured() bool {
	return n.mailer != nil && n.mailer.Configured() && n.to != ""
}

func (n *MailNotifier) Notify(ctx context.Context, c *domain.Contact) NotifyResult {
	res := n.notify(ctx, c)
	n.sent.WithLabelValues(string(res.Status)).Inc()
	return res
}

func (n *MailNotifier) notify(ctx context.Context, c *domain.Contact) NotifyResult {
	if !n.configured() {
		return NotifyResult{Status: NotifyNotConfigured}
	}
	msg, err := mail.ContactNotification(n.to, mail.ContactNotice{
		Name:       c.Name,
		Email:      c.Email,
		Subject:    c.Subject,
		Message:    c.Message,
		ReceivedAt: c.CreatedAt,
	})
	if err != nil {
		return NotifyResult{Status: NotifyFailed, Err: err}
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.mailer.Send(ctx, msg); err != nil {
		return NotifyResult{Status: NotifyFailed, Err: err}
	}
	return NotifyResult{Status: NotifySent}
}

// TestConfiguration sends a test message to the notification address.
func (n *MailNotifier) TestConfiguration(ctx context.Context) error {
	if !n.configured() {
		return ErrMailNotConfigured
	}
	msg, err := mail.TestMessage(n.to, n.mailer.Name(), time.Now())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return n.mailer.Send(ctx, msg)
}
