// Package mail implements the MailSender domain service over SMTP.
package mail

import (
	"context"

	"gopkg.in/gomail.v2"

	"lunchorder/config"
	"lunchorder/internal/domain/service"
	"lunchorder/internal/errors"
)

// gomailSender delivers mail through a plain SMTP dialer.
type gomailSender struct {
	cfg *config.SMTPConfig
}

// NewGomailSender is the constructor for gomailSender.
func NewGomailSender(cfg *config.Config) (service.MailSender, error) {
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		return nil, errors.New("smtp configuration is missing")
	}

	return &gomailSender{cfg: cfg.SMTP}, nil
}

// Send delivers one HTML mail to a single recipient.
func (s *gomailSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.cfg.Sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := dialer.DialAndSend(message); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}
