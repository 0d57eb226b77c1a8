package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shashiranjanraj/pizzeria/config"
)

// SMTP holds relay credentials.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
}

func smtpFromConfig() SMTP {
	return SMTP{
		Host:     config.Get("MAIL_HOST", "localhost"),
		Port:     config.Get("MAIL_PORT", "587"),
		Username: config.Get("MAIL_USERNAME", ""),
		Password: config.Get("MAIL_PASSWORD", ""),
	}
}

// SMTPMailer delivers through an SMTP relay: implicit TLS on port 465,
// STARTTLS (when offered) elsewhere.
type SMTPMailer struct {
	Config SMTP
	From   Sender
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	cfg := m.Config
	addr := cfg.Host + ":" + cfg.Port
	raw := buildRaw(m.From, msg)
	rcpt := []string{msg.To, m.From.Address}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		if cfg.Port == "465" {
			done <- sendTLS(addr, cfg.Host, auth, m.From.Address, rcpt, raw)
			return
		}
		done <- smtp.SendMail(addr, auth, m.From.Address, rcpt, raw)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail/smtp: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail/smtp: %w", ctx.Err())
	}
}

func sendTLS(addr, host string, auth smtp.Auth, from string, to []string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, a := range to {
		if err := client.Rcpt(a); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// buildRaw renders the message as RFC 5322 text. The sender copy travels as
// an envelope recipient only, so no Bcc header is written.
func buildRaw(from Sender, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from.String() + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + strings.NewReplacer("\r", "", "\n", "").Replace(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.Text)
		return []byte(b.String())
	}

	const boundary = "pizzeria-alt-boundary"
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + boundary + "\"\r\n\r\n")
	b.WriteString("--" + boundary + "\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Text + "\r\n")
	b.WriteString("--" + boundary + "\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML + "\r\n")
	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}
