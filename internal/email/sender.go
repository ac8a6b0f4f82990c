package email

import (
	"archway_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Message is a plain notification email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers notification emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(msg *Message) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends mail through an SMTP relay via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return s.dialer.DialAndSend(m)
}

// NoopSender drops messages, used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) Send(msg *Message) error {
	logger.Warn("email sending disabled, dropping message", "subject", msg.Subject)
	return nil
}
