package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "github.com/shashiranjanraj/pizzeria/pkg/http"
	"github.com/shashiranjanraj/pizzeria/pkg/payment"
	"github.com/shashiranjanraj/pizzeria/pkg/testkit"
)

func stripe() *payment.Stripe {
	return &payment.Stripe{BaseURL: "https://stripe.test", SecretKey: "sk_test_1", Timeout: time.Second, Retries: 1}
}

func order() payment.ChargeRequest {
	return payment.ChargeRequest{
		OrderID:     "ord123",
		AmountCents: 1250,
		Description: "Pizza order ord123",
		Source:      "tok_visa",
	}
}

func TestStripeChargeSucceeds(t *testing.T) {
	mt := testkit.NewMockTransport().
		On(http.MethodPost, "https://stripe.test/v1/charges", 200, `{"id":"ch_1","paid":true}`).
		Strict()
	pkghttp.DefaultClient.Transport = mt
	defer pkghttp.ResetTransport()

	ch, err := stripe().Charge(context.Background(), order())
	require.NoError(t, err)
	assert.Equal(t, payment.Charge{ID: "ch_1", Paid: true}, ch)

	calls := mt.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ord123", calls[0].Header.Get("Idempotency-Key"))

	form, err := url.ParseQuery(calls[0].Body)
	require.NoError(t, err)
	assert.Equal(t, "1250", form.Get("amount"))
	assert.Equal(t, "usd", form.Get("currency"))
	assert.Equal(t, "tok_visa", form.Get("source"))
	assert.Equal(t, "ord123", form.Get("metadata[orderId]"))

	user, _, ok := (&http.Request{Header: calls[0].Header}).BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "sk_test_1", user)
}

func TestStripeDeclined(t *testing.T) {
	mt := testkit.NewMockTransport().
		On(http.MethodPost, "https://stripe.test/v1/charges", 402, `{"error":{"type":"card_error","message":"Your card was declined."}}`)
	pkghttp.DefaultClient.Transport = mt
	defer pkghttp.ResetTransport()

	_, err := stripe().Charge(context.Background(), order())
	assert.True(t, errors.Is(err, payment.ErrDeclined))
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestStripeServerErrorIsGatewayError(t *testing.T) {
	mt := testkit.NewMockTransport().On(http.MethodPost, "https://stripe.test/", 503, `{}`)
	pkghttp.DefaultClient.Transport = mt
	defer pkghttp.ResetTransport()

	s := stripe()
	s.Retries = 2
	_, err := s.Charge(context.Background(), order())
	assert.True(t, errors.Is(err, payment.ErrGateway))
	assert.Len(t, mt.Calls(), 2)
}

func TestFakeGateway(t *testing.T) {
	f := &payment.Fake{}
	g := payment.Instrument("fake", f)

	ch, err := g.Charge(context.Background(), order())
	require.NoError(t, err)
	assert.True(t, ch.Paid)
	assert.NotEmpty(t, ch.ID)

	f.Decline = true
	_, err = g.Charge(context.Background(), order())
	assert.ErrorIs(t, err, payment.ErrDeclined)
	assert.Len(t, f.Charges(), 2)
}
