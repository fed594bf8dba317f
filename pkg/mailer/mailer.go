// Package mailer provides functionality to send emails over SMTP. It works
// with any plain-auth SMTP server; Mailtrap (smtp.mailtrap.io) is a
// convenient choice for development and testing environments.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends a single email. Callers treat a send failure as non-fatal.
type Mailer interface {
	Send(recipient, subject, body string) error
}

// SMTPMailer implements Mailer against a plain-auth SMTP server.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// NewSMTPMailer creates a Mailer for the given SMTP account.
func NewSMTPMailer(host, port, username, password, sender string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password, Sender: sender}
}

// Send delivers one message. The Content-Type is inferred from the body:
// anything containing basic HTML tags is sent as text/html.
func (m *SMTPMailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}
	if m.Username == "" || m.Password == "" {
		return fmt.Errorf("SMTP username and password must be provided")
	}

	contentType := "text/plain; charset=UTF-8"
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, m.Sender, subject, contentType, body))

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.Sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
