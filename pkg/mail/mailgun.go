package mail

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	pkghttp "github.com/shashiranjanraj/pizzeria/pkg/http"
)

// MailgunMailer posts to /v3/<domain>/messages. The sender is bcc'd on every
// receipt so the shop keeps a copy.
type MailgunMailer struct {
	BaseURL string
	Domain  string
	APIKey  string
	From    Sender
	Timeout time.Duration
	Retries int
}

func (m *MailgunMailer) Send(ctx context.Context, msg Message) error {
	if m.Domain == "" || m.APIKey == "" {
		return fmt.Errorf("%w: MAILGUN_DOMAIN and MAILGUN_API_KEY must be set", ErrNotConfigured)
	}

	form := url.Values{
		"from":    {m.From.String()},
		"to":      {msg.To},
		"bcc":     {m.From.Address},
		"subject": {msg.Subject},
		"text":    {msg.Text},
	}
	if msg.HTML != "" {
		form.Set("html", msg.HTML)
	}

	endpoint := strings.TrimRight(m.BaseURL, "/") + "/v3/" + url.PathEscape(m.Domain) + "/messages"
	resp, err := pkghttp.Post(endpoint).
		WithContext(ctx).
		BasicAuth("api", m.APIKey).
		Form(form).
		Timeout(m.Timeout).
		Retry(m.Retries, 500*time.Millisecond).
		Send()
	if err != nil {
		return fmt.Errorf("mail/mailgun: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: mailgun status %d: %s", ErrRejected, resp.StatusCode, resp.Text())
	}
	return nil
}
