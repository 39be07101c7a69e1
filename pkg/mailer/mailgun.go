package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers email synchronously through the Mailgun API.
type Mailgun struct {
	Domain string
	APIKey string
}

func NewMailgun(domain, apiKey string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey}
}

func (m *Mailgun) Send(ctx context.Context, from, to, subject, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(from, subject, "", to)
	msg.SetHtml(html)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
