// AngelaMos | 2026
// mailer.go

// Package mailer delivers transactional mail (welcome notices, OTP codes)
// over SMTP with implicit TLS. Delivery is best-effort; the caller decides
// whether a failure is fatal.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/cryptopay-app/api/internal/config"
)

type Sender interface {
	Send(to, subject, htmlBody string) error
}

// New returns an SMTP sender, or a log-only sender when no SMTP host is
// configured (local development).
func New(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return &logSender{}
	}
	return &smtpSender{cfg: cfg}
}

type smtpSender struct {
	cfg config.SMTPConfig
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", s.cfg.From) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody,
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	// Implicit TLS (port 465); the session is encrypted from the first byte.
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close() //nolint:errcheck // close on cleanup

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Quit() //nolint:errcheck // best-effort quit

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(s.cfg.Username); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return nil
}

type logSender struct{}

func (l *logSender) Send(to, subject, _ string) error {
	slog.Info("mail delivery skipped, no smtp host configured",
		"to", to,
		"subject", subject,
	)
	return nil
}
