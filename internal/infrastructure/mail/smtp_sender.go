package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Config captures the SMTP relay settings for outgoing welcome mail.
type Config struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

// SMTPSender delivers welcome messages over a plain SMTP relay.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendWelcome sends the initial credentials to a freshly provisioned account.
func (s *SMTPSender) SendWelcome(ctx context.Context, email, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildWelcomeMessage(s.cfg.From, email, username, password)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email}, msg); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}

func buildWelcomeMessage(from, to, username, password string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Your account is ready\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", username)
	b.WriteString("An account has been created for you.\r\n\r\n")
	fmt.Fprintf(&b, "Username: %s\r\nPassword: %s\r\n\r\n", username, password)
	b.WriteString("Please sign in and change your password.\r\n")
	return []byte(b.String())
}
