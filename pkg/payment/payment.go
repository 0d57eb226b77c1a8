// Package payment charges customers through a card processor.
//
// The driver is chosen by PAYMENT_DRIVER: "stripe" talks to the Stripe
// charges API, "fake" approves every charge locally (development and tests).
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

var (
	// ErrDeclined means the processor refused the card.
	ErrDeclined = errors.New("payment: charge declined")
	// ErrGateway means the processor could not be reached or answered with
	// something unusable. The charge may be retried.
	ErrGateway = errors.New("payment: gateway unavailable")
)

// ChargeRequest describes one charge. AmountCents is in the smallest unit
// of Currency.
type ChargeRequest struct {
	OrderID     string
	AmountCents int64
	Currency    string
	Description string
	Source      string
}

// Charge is the processor's record of a successful request.
type Charge struct {
	ID   string
	Paid bool
}

// Gateway charges cards.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Charge, error)
}

// New builds the configured gateway, wrapped with metrics.
func New() (Gateway, error) {
	driver := config.Get("PAYMENT_DRIVER", "fake")

	var g Gateway
	switch driver {
	case "fake":
		g = &Fake{}
	case "stripe":
		key := config.Get("STRIPE_SECRET_KEY", "")
		if key == "" {
			return nil, fmt.Errorf("payment: STRIPE_SECRET_KEY must be set for the stripe driver")
		}
		g = &Stripe{
			BaseURL:   config.Get("STRIPE_BASE_URL", "https://api.stripe.com"),
			SecretKey: key,
			Timeout:   config.GatewayTimeout(),
			Retries:   config.GatewayRetries(),
		}
	default:
		return nil, fmt.Errorf("payment: unknown driver %q", driver)
	}
	return Instrument(driver, g), nil
}

type instrumented struct {
	name string
	next Gateway
}

// Instrument records the duration and outcome of every charge.
func Instrument(name string, g Gateway) Gateway {
	return &instrumented{name: name, next: g}
}

func (i *instrumented) Charge(ctx context.Context, req ChargeRequest) (Charge, error) {
	start := time.Now()
	ch, err := i.next.Charge(ctx, req)
	metrics.ObserveGateway("payment_"+i.name, err, start)

	log := logger.WithCtx(ctx).With("gateway", i.name, "order_id", req.OrderID, "amount", req.AmountCents)
	if err != nil {
		log.Warn("payment: charge failed", "error", err)
	} else {
		log.Info("payment: charge succeeded", "charge_id", ch.ID)
	}
	return ch, err
}
