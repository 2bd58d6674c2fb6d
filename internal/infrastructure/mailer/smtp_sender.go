package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"gearswap/pkg/config"
	"gearswap/pkg/logger"
)

// EmailSender delivers transactional mail.
type EmailSender interface {
	Send(ctx context.Context, to, subject, bodyText string) error
}

type smtpSender struct {
	senderEmail string
	dialer      *gomail.Dialer
}

func NewSMTPSender(cfg *config.Config) (EmailSender, error) {
	if cfg.SMTPHost == "" || cfg.SMTPPort == 0 || cfg.SMTPSenderEmail == "" {
		return nil, fmt.Errorf("SMTP host, port, and sender email must be configured")
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &smtpSender{
		senderEmail: cfg.SMTPSenderEmail,
		dialer:      dialer,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, to, subject, bodyText string) error {
	if to == "" {
		return fmt.Errorf("no recipient provided for email")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", bodyText)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		logger.Warn("Email to %s (subject: %s) cancelled: %v", to, subject, ctx.Err())
		return fmt.Errorf("email sending cancelled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	logger.Info("Email sent to %s, subject: %s", to, subject)
	return nil
}
