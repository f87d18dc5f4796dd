// internal/adapters/out/mail/sendgrid_wire.go
package mail

import (
	"context"

	"go.uber.org/zap"
)

// Sender matches usecase.Mailer.
type Sender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// LogClient only logs messages. Used when no SendGrid key is configured.
type LogClient struct {
	log *zap.Logger
}

func NewLogClient(log *zap.Logger) *LogClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogClient{log: log.Named("mail")}
}

func (c *LogClient) Send(_ context.Context, from, to, subject, body string) error {
	c.log.Info("mail (not sent)",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// NewSender picks SendGrid when apiKey is set, the logging client otherwise.
func NewSender(apiKey, fromName string, log *zap.Logger) Sender {
	if log == nil {
		log = zap.NewNop()
	}
	if apiKey == "" {
		log.Warn("SENDGRID_API_KEY is empty; contact messages will only be logged")
		return NewLogClient(log)
	}
	return NewSendGridClient(apiKey, fromName, log)
}
