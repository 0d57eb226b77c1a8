package ctx_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	appctx "github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

type statusErr struct {
	status int
	msg    string
	fields map[string]string
}

func (e *statusErr) Error() string                  { return e.msg }
func (e *statusErr) HTTPStatus() int                { return e.status }
func (e *statusErr) FieldErrors() map[string]string { return e.fields }

func serve(req *http.Request, h appctx.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestReplyDefaults(t *testing.T) {
	rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c *appctx.Context) {
		c.Reply(0, nil, "")
		assert.Equal(t, http.StatusOK, c.WrittenStatus())
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{}", rec.Body.String())
}

func TestReplyHTML(t *testing.T) {
	rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c *appctx.Context) {
		c.Reply(http.StatusOK, "<h1>hi</h1>", response.HTML)
	})
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>hi</h1>", rec.Body.String())
}

func TestTokenAndQueryAreTrimmed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users?email=%20ada@example.com%20", nil)
	req.Header.Set("token", "  abc ")
	serve(req, func(c *appctx.Context) {
		assert.Equal(t, "abc", c.Token())
		assert.Equal(t, "ada@example.com", c.Query("email"))
	})
}

func TestSetAndGet(t *testing.T) {
	serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c *appctx.Context) {
		c.Set("email", "ada@example.com")
		assert.Equal(t, "ada@example.com", c.GetString("email"))
		_, ok := c.Get("missing")
		assert.False(t, ok)
	})
}

func TestBindJSONInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	rec := serve(req, func(c *appctx.Context) {
		var input struct {
			Email string `json:"email" validate:"required,email"`
		}
		assert.False(t, c.BindJSON(&input))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email"`)
}

func TestBindJSONValid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":" ada@example.com "}`))
	serve(req, func(c *appctx.Context) {
		var input struct {
			Email string `json:"email" validate:"required,email"`
		}
		assert.True(t, c.BindJSON(&input))
		assert.Equal(t, "ada@example.com", input.Email)
	})
}

func TestFailWithStatusError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &statusErr{status: http.StatusNotFound, msg: "Cart not found"})
	rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c *appctx.Context) {
		c.Fail(err)
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"Error":"Cart not found"}`, rec.Body.String())
}

func TestFailWithFields(t *testing.T) {
	err := &statusErr{status: http.StatusBadRequest, msg: "Invalid fields", fields: map[string]string{"code": "bad"}}
	rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c *appctx.Context) {
		c.Fail(err)
	})
	assert.JSONEq(t, `{"Error":"Invalid fields","Fields":{"code":"bad"}}`, rec.Body.String())
}

func TestFailHidesUnknownErrors(t *testing.T) {
	rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c *appctx.Context) {
		c.Fail(errors.New("disk on fire"))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestValidateQuery(t *testing.T) {
	type byID struct {
		ID string `json:"id" validate:"required,size=20"`
	}

	rec := serve(httptest.NewRequest(http.MethodGet, "/?id=short", nil), func(c *appctx.Context) {
		assert.False(t, c.Validate(&byID{ID: c.Query("id")}))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"The id must be exactly 20 characters."`)

	rec = serve(httptest.NewRequest(http.MethodGet, "/?id=abcdefghijklmnopqrst", nil), func(c *appctx.Context) {
		if assert.True(t, c.Validate(&byID{ID: c.Query("id")})) {
			c.Reply(http.StatusOK, nil, response.JSON)
		}
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
