package mail

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends through the SendGrid v3 mail/send endpoint.
type SendGridMailer struct {
	APIKey  string
	Host    string
	From    Sender
	Timeout time.Duration
	Retries int
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if m.APIKey == "" {
		return fmt.Errorf("%w: SENDGRID_API_KEY must be set", ErrNotConfigured)
	}

	body := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.From.Name, m.From.Address),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Text,
		msg.HTML,
	)

	return retry(ctx, m.Retries, 500*time.Millisecond, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, m.Timeout)
		defer cancel()

		req := sendgrid.GetRequest(m.APIKey, "/v3/mail/send", m.Host)
		req.Method = http.MethodPost
		req.Body = sgmail.GetRequestBody(body)

		resp, err := sendgrid.MakeRequestWithContext(attemptCtx, req)
		if err != nil {
			return fmt.Errorf("mail/sendgrid: %w", err)
		}
		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("mail/sendgrid: status %d", resp.StatusCode)
		default:
			return fmt.Errorf("%w: sendgrid status %d: %s", ErrRejected, resp.StatusCode, resp.Body)
		}
	})
}
