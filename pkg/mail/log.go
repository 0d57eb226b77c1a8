package mail

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

// LogMailer writes messages to the application log instead of sending them.
type LogMailer struct {
	from Sender
}

func NewLogMailer(from Sender) *LogMailer {
	return &LogMailer{from: from}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	logger.WithCtx(ctx).Info("mail: message logged",
		"from", m.from.String(),
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
