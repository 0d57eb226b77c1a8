package http_test

import (
	"context"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "github.com/shashiranjanraj/pizzeria/pkg/http"
)

func TestFormAndBasicAuth(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-123", pass)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "order-1", r.Header.Get("Idempotency-Key"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "1000", r.PostForm.Get("amount"))
		assert.Equal(t, "order-1", r.PostForm.Get("metadata[orderId]"))
		w.WriteHeader(gohttp.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"ch_1"}`)
	}))
	defer srv.Close()

	resp, err := pkghttp.Post(srv.URL).
		BasicAuth("api", "key-123").
		Header("Idempotency-Key", "order-1").
		Form(url.Values{"amount": {"1000"}, "metadata[orderId]": {"order-1"}}).
		Send()
	require.NoError(t, err)
	assert.True(t, resp.OK())

	var out struct{ ID string }
	require.NoError(t, resp.JSON(&out))
	assert.Equal(t, "ch_1", out.ID)
}

func TestRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(gohttp.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `ok`)
	}))
	defer srv.Close()

	resp, err := pkghttp.Get(srv.URL).Retry(3, time.Millisecond).Send()
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
	assert.Equal(t, int32(3), hits.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		hits.Add(1)
		w.WriteHeader(gohttp.StatusPaymentRequired)
	}))
	defer srv.Close()

	resp, err := pkghttp.Post(srv.URL).Retry(3, time.Millisecond).Send()
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusPaymentRequired, resp.StatusCode)
	assert.Error(t, resp.Throw())
	assert.Equal(t, int32(1), hits.Load())
}

func TestLastRetryableResponseIsReturned(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		w.WriteHeader(gohttp.StatusBadGateway)
	}))
	defer srv.Close()

	resp, err := pkghttp.Get(srv.URL).Retry(2, time.Millisecond).Send()
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusBadGateway, resp.StatusCode)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := pkghttp.Get(srv.URL).Timeout(20 * time.Millisecond).Send()
	assert.Error(t, err)
}

func TestCancelledContextStopsRetrying(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		w.WriteHeader(gohttp.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pkghttp.Get(srv.URL).WithContext(ctx).Retry(5, time.Second).Send()
	assert.Error(t, err)
}
