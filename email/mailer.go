// Package email delivers account notifications. Delivery failures are the
// caller's to log; nothing in here retries.
package email

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends the welcome mail carrying generated credentials. Services
// depend on this interface so tests can substitute a fake.
type Mailer interface {
	SendWelcome(to, name, password string) error
}

// SMTPMailer is the production Mailer.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(host string, port int, username, password, from string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

// SendWelcome mails the new member their one-time credentials and asks them
// to change the password on first login.
func (m *SMTPMailer) SendWelcome(to, name, password string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome to BNConnect - Your Account Details")
	msg.SetBody("text/html", fmt.Sprintf(`<h1>Welcome to BNConnect!</h1>
<p>Dear %s,</p>
<p>Your account has been created successfully. Here are your login credentials:</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Password:</strong> %s</p>
<p>For security reasons, please change your password after your first login.</p>
<p>Best regards,<br>BNConnect Team</p>`, name, to, password))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}
	m.logger.Info("Welcome email sent", zap.String("email", to))
	return nil
}

// NoopMailer drops mail on the floor. Used when SMTP is not configured and
// in tests.
type NoopMailer struct{}

var _ Mailer = (*NoopMailer)(nil)

func (NoopMailer) SendWelcome(string, string, string) error { return nil }
