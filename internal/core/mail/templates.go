package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// ContactNotice is the data rendered into the new-message notification.
type ContactNotice struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}

var contactHTML = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">New Contact Form Submission</h2>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 5px;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Message:</strong></p>
    <div style="background: #fff; padding: 15px; border-left: 4px solid #007bff; white-space: pre-wrap;">{{.Message}}</div>
  </div>
  <p style="color: #666; font-size: 12px;">Received {{.ReceivedAt.Format "2006-01-02 15:04 MST"}} via the portfolio contact form.</p>
</body>
</html>`))

var testHTML = template.Must(template.New("test").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Email configuration works</h2>
  <p>This test message was sent by {{.Transport}} at {{.SentAt.Format "2006-01-02 15:04:05 MST"}}.</p>
</body>
</html>`))

// ContactNotification renders the admin notification for a new contact message.
func ContactNotification(to string, n ContactNotice) (Message, error) {
	var buf bytes.Buffer
	if err := contactHTML.Execute(&buf, n); err != nil {
		return Message{}, fmt.Errorf("render contact notification: %w", err)
	}
	text := fmt.Sprintf("New contact form submission\n\nName: %s\nEmail: %s\nSubject: %s\n\n%s\n",
		n.Name, n.Email, n.Subject, n.Message)
	return Message{
		To:      to,
		ReplyTo: n.Email,
		Subject: "Portfolio Contact: " + n.Subject,
		Text:    text,
		HTML:    buf.String(),
	}, nil
}

// TestMessage renders the message sent by the configuration check.
func TestMessage(to, transport string, at time.Time) (Message, error) {
	var buf bytes.Buffer
	data := struct {
		Transport string
		SentAt    time.Time
	}{transport, at}
	if err := testHTML.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render test message: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Portfolio email configuration test",
		Text:    "Your portfolio email configuration is working.",
		HTML:    buf.String(),
	}, nil
}
