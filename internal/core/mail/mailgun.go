package mail

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	domain  string
	apiKey  string
	baseURL string
	sender  string
	timeout time.Duration
}

func NewMailgun(cfg Config) *Mailgun {
	return &Mailgun{
		domain:  cfg.MailgunDomain,
		apiKey:  cfg.MailgunAPIKey,
		baseURL: cfg.MailgunBaseURL,
		sender:  cfg.From,
		timeout: cfg.Timeout,
	}
}

func (m *Mailgun) Name() string { return "mailgun" }

func (m *Mailgun) Configured() bool { return m.domain != "" && m.apiKey != "" }

func (m *Mailgun) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	client := mg.NewMailgun(m.domain, m.apiKey)
	if m.baseURL != "" {
		client.SetAPIBase(m.baseURL)
	}
	out := client.NewMessage(m.sender, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		out.SetHtml(msg.HTML)
	}
	if msg.ReplyTo != "" {
		out.SetReplyTo(msg.ReplyTo)
	}
	c, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if _, _, err := client.Send(c, out); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
