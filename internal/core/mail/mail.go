package mail

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned by Send when no transport credentials are set.
var ErrNotConfigured = errors.New("mail transport not configured")

type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
	// Configured reports whether the transport has credentials to try a send.
	Configured() bool
	Name() string
}

type Config struct {
	Provider       string // smtp / mailgun / none
	Host           string
	Port           int
	Username       string
	Password       string
	From           string
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunBaseURL string
	Timeout        time.Duration
}

// New picks the transport named by cfg.Provider.
func New(cfg Config) (Mailer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	switch cfg.Provider {
	case "smtp":
		return NewSMTP(cfg), nil
	case "mailgun":
		return NewMailgun(cfg), nil
	case "", "none":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// Disabled never sends.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error { return ErrNotConfigured }
func (Disabled) Configured() bool                    { return false }
func (Disabled) Name() string                        { return "none" }
