// Package routes registers every HTTP route of the pizzeria on a router.
package routes

import (
	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// RegisterAPI mounts the JSON API under /api. Routes touching a user's
// resources require the "token" header.
func RegisterAPI(r *router.Router, c *controllers.Controllers) {
	api := r.Group("/api")

	api.Post("/users", "users.store", ctx.Wrap(c.Users.Store))
	api.Post("/tokens", "tokens.store", ctx.Wrap(c.Tokens.Store))
	api.Get("/tokens", "tokens.show", ctx.Wrap(c.Tokens.Show))
	api.Put("/tokens", "tokens.update", ctx.Wrap(c.Tokens.Update))
	api.Delete("/tokens", "tokens.destroy", ctx.Wrap(c.Tokens.Destroy))

	protected := api.Group("", middleware.RequireToken)

	protected.Get("/users", "users.show", ctx.Wrap(c.Users.Show))
	protected.Put("/users", "users.update", ctx.Wrap(c.Users.Update))
	protected.Delete("/users", "users.destroy", ctx.Wrap(c.Users.Destroy))

	protected.Get("/menu", "menu.index", ctx.Wrap(c.Menu.Index))

	protected.Post("/carts", "carts.store", ctx.Wrap(c.Carts.Store))
	protected.Get("/carts", "carts.show", ctx.Wrap(c.Carts.Show))
	protected.Put("/carts", "carts.update", ctx.Wrap(c.Carts.Update))
	protected.Delete("/carts", "carts.destroy", ctx.Wrap(c.Carts.Destroy))

	protected.Post("/orders", "orders.store", ctx.Wrap(c.Orders.Store))
	protected.Get("/orders", "orders.show", ctx.Wrap(c.Orders.Show))
}
