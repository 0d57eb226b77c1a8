// Package mail delivers transactional email (order receipts) through one of
// several providers, selected by MAIL_DRIVER:
//
//	log       write the message to the application log (default)
//	mailgun   Mailgun HTTP API
//	postmark  Postmark API
//	sendgrid  SendGrid v3 API
//	smtp      any SMTP relay
//
// Usage:
//
//	mailer, err := mail.New()
//	err = mailer.Send(ctx, mail.Message{
//	    To:      "ada@example.com",
//	    Subject: "Your pizza receipt",
//	    Text:    body,
//	})
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

// Message is a single outgoing email. HTML is optional.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

var (
	// ErrRejected is wrapped by drivers when the provider refused the message.
	ErrRejected = errors.New("mail: provider rejected the message")
	// ErrNotConfigured means the driver is missing credentials.
	ErrNotConfigured = errors.New("mail: driver not configured")
)

// Sender is the From identity shared by every driver.
type Sender struct {
	Address string
	Name    string
}

func (s Sender) String() string {
	if s.Name == "" {
		return s.Address
	}
	return fmt.Sprintf("%s <%s>", s.Name, s.Address)
}

func defaultSender() Sender {
	return Sender{
		Address: config.Get("MAIL_FROM", "orders@pizzeria.test"),
		Name:    config.Get("MAIL_FROM_NAME", config.AppName()),
	}
}

// New builds the configured driver, wrapped with metrics.
func New() (Mailer, error) {
	driver := config.Get("MAIL_DRIVER", "log")
	from := defaultSender()
	timeout := config.GatewayTimeout()
	retries := config.GatewayRetries()

	var m Mailer
	switch driver {
	case "log":
		m = NewLogMailer(from)
	case "mailgun":
		m = &MailgunMailer{
			BaseURL: config.Get("MAILGUN_BASE_URL", "https://api.mailgun.net"),
			Domain:  config.Get("MAILGUN_DOMAIN", ""),
			APIKey:  config.Get("MAILGUN_API_KEY", ""),
			From:    from,
			Timeout: timeout,
			Retries: retries,
		}
	case "postmark":
		m = NewPostmarkMailer(config.Get("POSTMARK_SERVER_TOKEN", ""), config.Get("POSTMARK_BASE_URL", ""), from, timeout, retries)
	case "sendgrid":
		m = &SendGridMailer{
			APIKey:  config.Get("SENDGRID_API_KEY", ""),
			Host:    config.Get("SENDGRID_BASE_URL", "https://api.sendgrid.com"),
			From:    from,
			Timeout: timeout,
			Retries: retries,
		}
	case "smtp":
		m = &SMTPMailer{Config: smtpFromConfig(), From: from}
	default:
		return nil, fmt.Errorf("mail: unknown driver %q", driver)
	}
	return Instrument(driver, m), nil
}

type instrumented struct {
	name string
	next Mailer
}

// Instrument records the duration and outcome of every send.
func Instrument(name string, m Mailer) Mailer {
	return &instrumented{name: name, next: m}
}

func (i *instrumented) Send(ctx context.Context, m Message) error {
	start := time.Now()
	err := i.next.Send(ctx, m)
	metrics.ObserveGateway("mail_"+i.name, err, start)
	if err != nil {
		logger.WithCtx(ctx).Warn("mail: send failed", "driver", i.name, "to", m.To, "error", err)
	}
	return err
}

// retry runs fn up to attempts times with doubling backoff. Errors wrapping
// ErrRejected are not retried.
func retry(ctx context.Context, attempts int, wait time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil || errors.Is(err, ErrRejected) || errors.Is(err, ErrNotConfigured) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait << i):
		}
	}
	return err
}
