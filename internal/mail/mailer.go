package mail

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when SMTP settings are missing. Callers treat
// it the same as any other delivery failure: log and move on.
var ErrNotConfigured = errors.New("mail is not configured")

// Mailer delivers the account-welcome message. Delivery is always best
// effort; no request ever fails because of it.
type Mailer interface {
	SendWelcome(to, nickname, username, password string) error
}

// SMTPMailer sends plain-text mail over authenticated SMTP.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendWelcome mails the freshly generated game credentials to a new account
// holder. The password travels in plaintext because the recipient has no
// other way to learn it.
func (m *SMTPMailer) SendWelcome(to, nickname, username, password string) error {
	if m.host == "" || m.username == "" || m.password == "" || m.from == "" {
		return ErrNotConfigured
	}

	subject := "Welcome to Aethelgard!"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour game account has been created!\n\nUsername: %s\nPassword: %s\n\nYou can change this password in your profile settings.",
		nickname, username, password,
	)

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
