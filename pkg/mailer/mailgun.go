package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Message is one outgoing email. HTML and ReplyTo are optional.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// Configured reports whether domain, key and sender are all set.
func (m *Mailgun) Configured() bool {
	return m != nil && m.Domain != "" && m.APIKey != "" && m.Sender != ""
}

// Send delivers msg via Mailgun with a 10s timeout.
func (m *Mailgun) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return errors.New("mailgun is not configured")
	}
	client := mg.NewMailgun(m.Domain, m.APIKey)
	out := client.NewMessage(m.Sender, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		out.SetHtml(msg.HTML)
	}
	if msg.ReplyTo != "" {
		out.SetReplyTo(msg.ReplyTo)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, out)
	return err
}
