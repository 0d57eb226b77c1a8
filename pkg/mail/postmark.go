package mail

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/keighl/postmark"
)

// PostmarkMailer sends through the Postmark API.
type PostmarkMailer struct {
	client  *postmark.Client
	from    Sender
	retries int
}

// NewPostmarkMailer builds a mailer for serverToken. baseURL may be empty
// for the public API.
func NewPostmarkMailer(serverToken, baseURL string, from Sender, timeout time.Duration, retries int) *PostmarkMailer {
	client := postmark.NewClient(serverToken, "")
	client.HTTPClient = &http.Client{Timeout: timeout}
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	return &PostmarkMailer{client: client, from: from, retries: retries}
}

func (m *PostmarkMailer) Send(ctx context.Context, msg Message) error {
	if m.client.ServerToken == "" {
		return fmt.Errorf("%w: POSTMARK_SERVER_TOKEN must be set", ErrNotConfigured)
	}
	email := postmark.Email{
		From:     m.from.String(),
		To:       msg.To,
		Bcc:      m.from.Address,
		Subject:  msg.Subject,
		TextBody: msg.Text,
		HtmlBody: msg.HTML,
		Tag:      "receipt",
	}

	return retry(ctx, m.retries, 500*time.Millisecond, func(context.Context) error {
		res, err := m.client.SendEmail(email)
		if err != nil {
			if res.ErrorCode != 0 {
				return fmt.Errorf("%w: postmark code %d: %s", ErrRejected, res.ErrorCode, res.Message)
			}
			return fmt.Errorf("mail/postmark: %w", err)
		}
		return nil
	})
}
