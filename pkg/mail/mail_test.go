package mail_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "github.com/shashiranjanraj/pizzeria/pkg/http"
	"github.com/shashiranjanraj/pizzeria/pkg/mail"
	"github.com/shashiranjanraj/pizzeria/pkg/testkit"
)

var shop = mail.Sender{Address: "orders@pizzeria.test", Name: "Pizzeria"}

func receipt() mail.Message {
	return mail.Message{To: "ada@example.com", Subject: "Your receipt", Text: "Total: $12.50"}
}

func TestMailgunPostsForm(t *testing.T) {
	mt := testkit.NewMockTransport().
		On(http.MethodPost, "https://mg.test/v3/mg.pizzeria.test/messages", 200, `{"id":"<1@mg>","message":"Queued"}`).
		Strict()
	pkghttp.DefaultClient.Transport = mt
	defer pkghttp.ResetTransport()

	m := &mail.MailgunMailer{
		BaseURL: "https://mg.test/",
		Domain:  "mg.pizzeria.test",
		APIKey:  "key-abc",
		From:    shop,
		Timeout: time.Second,
		Retries: 1,
	}
	require.NoError(t, m.Send(context.Background(), receipt()))

	calls := mt.Calls()
	require.Len(t, calls, 1)
	form, err := url.ParseQuery(calls[0].Body)
	require.NoError(t, err)
	assert.Equal(t, "Pizzeria <orders@pizzeria.test>", form.Get("from"))
	assert.Equal(t, "ada@example.com", form.Get("to"))
	assert.Equal(t, "orders@pizzeria.test", form.Get("bcc"))
	assert.Equal(t, "Your receipt", form.Get("subject"))
	assert.Equal(t, "Total: $12.50", form.Get("text"))

	req := &http.Request{Header: calls[0].Header}
	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "api", user)
	assert.Equal(t, "key-abc", pass)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestMailgunRejection(t *testing.T) {
	mt := testkit.NewMockTransport().On(http.MethodPost, "https://mg.test/", 401, `Forbidden`)
	pkghttp.DefaultClient.Transport = mt
	defer pkghttp.ResetTransport()

	m := &mail.MailgunMailer{BaseURL: "https://mg.test", Domain: "d", APIKey: "k", From: shop, Timeout: time.Second}
	err := m.Send(context.Background(), receipt())
	assert.True(t, errors.Is(err, mail.ErrRejected))
}

func TestMailgunRequiresCredentials(t *testing.T) {
	m := &mail.MailgunMailer{BaseURL: "https://mg.test", From: shop}
	assert.ErrorIs(t, m.Send(context.Background(), receipt()), mail.ErrNotConfigured)
}

func TestPostmarkSendsEmail(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &got))
		_, _ = io.WriteString(w, `{"To":"ada@example.com","SubmittedAt":"2026-01-01T00:00:00Z","MessageID":"m-1","ErrorCode":0,"Message":"OK"}`)
	}))
	defer srv.Close()

	m := mail.NewPostmarkMailer("server-token", srv.URL, shop, time.Second, 1)
	require.NoError(t, m.Send(context.Background(), receipt()))
	assert.Equal(t, "ada@example.com", got["To"])
	assert.Equal(t, "Your receipt", got["Subject"])
	assert.Equal(t, "Total: $12.50", got["TextBody"])
}

func TestSendGridStatusHandling(t *testing.T) {
	status := http.StatusAccepted
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		w.WriteHeader(status)
	}))
	defer srv.Close()

	m := &mail.SendGridMailer{APIKey: "sg-key", Host: srv.URL, From: shop, Timeout: time.Second, Retries: 2}
	require.NoError(t, m.Send(context.Background(), receipt()))
	assert.Equal(t, 1, calls)

	status = http.StatusBadRequest
	err := m.Send(context.Background(), receipt())
	assert.True(t, errors.Is(err, mail.ErrRejected))
	assert.Equal(t, 2, calls)
}

func TestLogMailerNeverFails(t *testing.T) {
	m := mail.Instrument("log", mail.NewLogMailer(shop))
	assert.NoError(t, m.Send(context.Background(), receipt()))
}

func TestSenderString(t *testing.T) {
	assert.Equal(t, "orders@pizzeria.test", mail.Sender{Address: "orders@pizzeria.test"}.String())
	assert.Equal(t, "Pizzeria <orders@pizzeria.test>", shop.String())
}
