package mailer

import (
	"context"

	"github.com/accountd/accountd/pkg/helpers"
)

// QueuedSender publishes email jobs to RabbitMQ instead of delivering them
// inline; cmd/email_worker consumes the queue. A publish failure surfaces to
// the caller the same way a direct send failure would.
type QueuedSender struct {
	Pub *helpers.RabbitPublisher
}

func NewQueuedSender(pub *helpers.RabbitPublisher) *QueuedSender {
	return &QueuedSender{Pub: pub}
}

func (s *QueuedSender) Send(ctx context.Context, from, to, subject, html string) error {
	return s.Pub.PublishJSON(ctx, EmailJob{From: from, To: to, Subject: subject, HTML: html})
}
