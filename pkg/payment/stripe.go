package payment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkghttp "github.com/shashiranjanraj/pizzeria/pkg/http"
)

// Stripe creates charges with POST /v1/charges. The order id doubles as the
// Idempotency-Key so a retried request can never charge twice.
type Stripe struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
	Retries   int
}

type stripeCharge struct {
	ID    string `json:"id"`
	Paid  bool   `json:"paid"`
	Error *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Stripe) Charge(ctx context.Context, req ChargeRequest) (Charge, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	form := url.Values{
		"amount":            {strconv.FormatInt(req.AmountCents, 10)},
		"currency":          {currency},
		"source":            {req.Source},
		"description":       {req.Description},
		"metadata[orderId]": {req.OrderID},
	}

	resp, err := pkghttp.Post(strings.TrimRight(s.BaseURL, "/")+"/v1/charges").
		WithContext(ctx).
		BasicAuth(s.SecretKey, "").
		Header("Idempotency-Key", req.OrderID).
		Form(form).
		Timeout(s.Timeout).
		Retry(s.Retries, 500*time.Millisecond).
		Send()
	if err != nil {
		return Charge{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	var body stripeCharge
	_ = resp.JSON(&body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if !body.Paid && body.ID == "" {
			return Charge{}, fmt.Errorf("%w: unreadable charge response", ErrGateway)
		}
		return Charge{ID: body.ID, Paid: true}, nil
	case resp.StatusCode == http.StatusPaymentRequired:
		msg := "card declined"
		if body.Error != nil && body.Error.Message != "" {
			msg = body.Error.Message
		}
		return Charge{}, fmt.Errorf("%w: %s", ErrDeclined, msg)
	default:
		return Charge{}, fmt.Errorf("%w: stripe status %d", ErrGateway, resp.StatusCode)
	}
}
