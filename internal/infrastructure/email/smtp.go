package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"ticketsys/internal/shared/config"
)

// SMTPEmailService delivers the lifecycle notifications. One message covers
// all recipients; per-recipient accounting happens upstream in the
// notification dispatcher.
type SMTPEmailService struct {
	config *config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(cfg *config.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		config: cfg,
		dialer: dialer,
	}
}

// Send delivers a multipart text+HTML message to every listed address.
func (s *SMTPEmailService) Send(subject, textBody, htmlBody string, to []string) error {
	if len(to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
