package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestGroupRoutesAndNames(t *testing.T) {
	r := router.New()
	api := r.Group("/api/")
	api.Get("users", "users.show", ok("show"))
	api.Delete("/users/", "users.destroy", ok("destroy"))

	path, found := r.Path("users.show")
	require.True(t, found)
	assert.Equal(t, "/api/users", path)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/users", nil))
	assert.Equal(t, "destroy", rec.Body.String())
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/v1", mw("outer")).Group("/inner", mw("inner"))
	g.Get("/", "inner.index", ok("x"), mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/inner", nil))
	assert.Equal(t, []string{"outer", "inner", "route"}, order)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusMethodNotAllowed) })
	r.Get("/api/menu", "menu.index", ok("menu"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/menu", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestURLSubstitutesParams(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", ok(""))

	url, err := r.URL("orders.show", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/abc", url)

	_, err = r.URL("orders.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutesAreSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.store", ok(""))
	r.Get("/b", "b.index", ok(""))
	r.Handle("/a/*", "a.files", ok(""))

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: "*", Path: "/a/*", Name: "a.files"}, routes[0])
	assert.Equal(t, "GET", routes[1].Method)
	assert.Equal(t, "POST", routes[2].Method)
}
