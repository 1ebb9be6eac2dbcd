// Package notifier sends administrative notification mails.
package notifier

import (
	"context"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/pkg/config"
)

// SMTPNotifier delivers mails through an SMTP relay.
type SMTPNotifier struct {
	client *mail.Client
	from   string
	logger *zap.Logger
}

func NewSMTPNotifier(cfg *config.Config, logger *zap.Logger) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, err
	}

	return &SMTPNotifier{
		client: client,
		from:   cfg.SMTPFrom,
		logger: logger,
	}, nil
}

func (n *SMTPNotifier) Send(ctx context.Context, subject, body, recipient string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return err
	}
	if err := msg.To(recipient); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return err
	}

	n.logger.Info("notification mail sent",
		zap.String("subject", subject),
		zap.String("recipient", recipient))
	return nil
}
