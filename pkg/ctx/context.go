// Package ctx provides the request context handed to every pizzeria handler.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func ShowMenu(c *ctx.Context) {
//	    if _, err := tokens.Verify(c.Context(), c.Token(), ""); err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Reply(http.StatusOK, menu.Items(), response.JSON)
//	}
//
//	router.Get("/api/menu", "menu.index", ctx.Wrap(ShowMenu))
package ctx

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/pizzeria/pkg/bind"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// TokenHeader carries the session token id on authenticated requests.
const TokenHeader = "token"

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// StatusError is implemented by errors that know their HTTP status.
type StatusError interface {
	error
	HTTPStatus() int
}

// FieldError is implemented by validation errors that carry per-field messages.
type FieldError interface {
	FieldErrors() map[string]string
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a trimmed query-string value, "" when absent.
func (c *Context) Query(key string) string {
	return strings.TrimSpace(c.R.URL.Query().Get(key))
}

// Header returns the trimmed value of a request header.
func (c *Context) Header(key string) string {
	return strings.TrimSpace(c.R.Header.Get(key))
}

// Token returns the session token presented in the "token" header.
func (c *Context) Token() string { return c.Header(TokenHeader) }

func (c *Context) Method() string { return c.R.Method }

func (c *Context) Path() string { return c.R.URL.Path }

// ClientIP returns the client IP, respecting X-Forwarded-For.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	ip := c.R.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Set stores a value in the per-request store.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

// Get retrieves a value from the per-request store.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// GetString returns a string value from the store, or "".
func (c *Context) GetString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// BindJSON decodes and validates the body into dest. On failure it answers
// 400 with the field messages and returns false.
//
//	var input signupInput
//	if !c.BindJSON(&input) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if len(errs) > 0 {
		response.ValidationError(c.W, "Missing or invalid required fields", errs)
		c.status = http.StatusBadRequest
		return false
	}
	return true
}

// Validate runs the `validate` tags of input, usually a struct filled from
// query parameters, and answers 400 with the field messages on failure.
func (c *Context) Validate(input any) bool {
	errs := validate.Struct(input)
	if len(errs) == 0 {
		return true
	}
	c.JSON(http.StatusBadRequest, response.ErrorBody{Error: "Missing or invalid required fields", Fields: errs})
	return false
}

// Reply writes status, payload and content type through response.Write.
func (c *Context) Reply(status int, payload any, contentType string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.status = status
	response.Write(c.W, status, payload, contentType)
}

// JSON writes a JSON response.
func (c *Context) JSON(status int, v any) {
	c.Reply(status, v, response.JSON)
}

// Error writes {"Error": message}.
func (c *Context) Error(status int, message string) {
	c.JSON(status, response.ErrorBody{Error: message})
}

// Fail turns err into a response. Errors carrying an HTTP status are shown to
// the caller; anything else is logged and answered with a generic 500.
func (c *Context) Fail(err error) {
	var se StatusError
	if !errors.As(err, &se) {
		logger.WithCtx(c.Context()).Error("request failed", "path", c.Path(), "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	status := se.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.WithCtx(c.Context()).Error("request failed", "path", c.Path(), "error", err)
	}

	var fe FieldError
	if errors.As(err, &fe) && len(fe.FieldErrors()) > 0 {
		c.JSON(status, response.ErrorBody{Error: se.Error(), Fields: fe.FieldErrors()})
		return
	}
	c.Error(status, se.Error())
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
