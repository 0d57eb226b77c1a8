package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/api/carts", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/api/carts", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/carts?id=abc", nil))
	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/api/carts", "418"))

	assert.Equal(t, before+1, after)
}

func TestRecordJob(t *testing.T) {
	before := testutil.ToFloat64(metrics.JobsProcessed.WithLabelValues("sweep", "failed"))
	metrics.RecordJob("sweep", errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.JobsProcessed.WithLabelValues("sweep", "failed")))
}

func TestHandlerServesRegistry(t *testing.T) {
	metrics.ObserveStore("users", "read", time.Now())

	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pizzeria_store_op_duration_seconds")
}
