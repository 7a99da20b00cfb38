package service

import "context"

// MailSender delivers transactional mail (currently only password resets).
type MailSender interface {
	// Send delivers one HTML mail to a single recipient.
	Send(ctx context.Context, to, subject, htmlBody string) error
}
