// Package kernel assembles the HTTP handler of the pizzeria: the global
// middleware stack, JSON 404/405 answers, the /metrics endpoint and the
// application routes.
package kernel

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/reqid"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// RouteFunc registers routes on the router.
type RouteFunc func(r *router.Router)

// New builds the router and calls every fn on it, in order.
func New(fns ...RouteFunc) *router.Router {
	r := router.New()

	// Outermost first: metrics see total latency, recovery sees every panic,
	// and the request id exists before anything logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.CORSPolicy{
		Origins: middleware.ParseOrigins(config.Get("CORS_ORIGINS", "*")),
		MaxAge:  5 * time.Minute,
	}))
	r.Use(middleware.RateLimit(config.Int("RATE_LIMIT", 200), time.Minute))
	r.Use(chimw.StripSlashes)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	r.Get("/metrics", "metrics", metrics.Handler())

	for _, fn := range fns {
		fn(r)
	}
	return r
}
