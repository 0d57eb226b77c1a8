package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

// ErrMissingToken is the message protected routes answer with.
const ErrMissingToken = "Missing required token in header, or token is invalid."

var tokenRE = regexp.MustCompile(`^[a-zA-Z0-9]{60}$`)

// RequireToken rejects requests whose "token" header is absent or not a
// well-formed token id with 403. Ownership and expiry are checked by the
// handler against the resource being touched.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if !tokenRE.MatchString(strings.TrimSpace(r.Header.Get("token"))) {
			response.Error(w, http.StatusForbidden, ErrMissingToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}
