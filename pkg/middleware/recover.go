package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

// Recovery logs a handler panic with its stack, counts it, and answers
// {"Error":"Internal Server Error"}. http.ErrAbortHandler is re-raised so
// net/http can drop the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}

			metrics.PanicsRecovered.Inc()
			logger.WithCtx(r.Context()).Error("http: handler panicked",
				"panic", fmt.Sprint(v),
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}
