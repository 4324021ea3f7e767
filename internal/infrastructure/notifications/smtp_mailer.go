package notifications

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/you/ordersvc/domain"
)

// SMTPMailerImpl implements domain.Mailer over SMTP
type SMTPMailerImpl struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(host string, port int, username, password, from string) domain.Mailer {
	return &SMTPMailerImpl{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send implements domain.Mailer
func (m *SMTPMailerImpl) Send(to, subject, htmlBody string) error {
	// If SMTP is not configured, log instead of sending
	if m.dialer.Host == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
