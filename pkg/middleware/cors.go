package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CORSPolicy lists which browser origins may call the API. An Origins entry
// of "*" admits every origin.
type CORSPolicy struct {
	Origins []string
	MaxAge  time.Duration
}

var (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	// The browser client sends its session in the "token" header.
	corsHeaders = "Accept, Content-Type, token, Idempotency-Key, X-Request-ID"
)

// ParseOrigins splits a comma-separated origin list such as the CORS_ORIGINS
// setting. Blank input admits every origin.
func ParseOrigins(list string) []string {
	var out []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimRight(o, "/"))
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// CORS sets the access-control headers for admitted origins and ends
// preflight requests with 204.
func CORS(p CORSPolicy) func(http.Handler) http.Handler {
	wildcard := slices.Contains(p.Origins, "*")
	maxAge := strconv.Itoa(int(p.MaxAge / time.Second))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()

			switch {
			case origin == "":
			case wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			case slices.Contains(p.Origins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			default:
				origin = ""
			}

			if origin != "" {
				h.Set("Access-Control-Expose-Headers", "X-Request-ID")
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if !preflight {
				next.ServeHTTP(w, r)
				return
			}
			if origin != "" {
				h.Set("Access-Control-Allow-Methods", corsMethods)
				h.Set("Access-Control-Allow-Headers", corsHeaders)
				if p.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", maxAge)
				}
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
